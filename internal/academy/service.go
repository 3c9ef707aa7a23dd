package academy

import (
	"log/slog"

	errors "github.com/alphagrips/academy-backend/internal"
	academyDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/academy"
)

type RepositoryAPI interface {
	GetAll() ([]*academyDatamodel.Academy, error)
	GetByID(id int64) (*academyDatamodel.Academy, error)
	Create(a *academyDatamodel.Academy) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListAcademies returns every academy for a super admin, or just the caller's
// own academy for everyone else.
func (s *Service) ListAcademies(user *errors.SessionUser) ([]*Academy, error) {
	if user.Role == errors.RoleSuperAdmin {
		rows, err := s.repo.GetAll()
		if err != nil {
			s.logger.Error("failed to list academies", "error", err)
			return nil, err
		}
		return FromDataModelSlice(rows), nil
	}

	row, err := s.repo.GetByID(user.AcademyID)
	if err != nil {
		s.logger.Error("failed to load academy", "error", err, "academy_id", user.AcademyID)
		return nil, errors.ErrAcademyNotFound
	}
	return []*Academy{FromDataModel(row)}, nil
}

func (s *Service) CreateAcademy(dto *CreateAcademyDTO) (*Academy, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &academyDatamodel.Academy{Name: dto.Name}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create academy", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("academy created", "academy_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}
