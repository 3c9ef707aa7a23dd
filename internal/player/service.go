package player

import (
	"log/slog"

	errors "github.com/alphagrips/academy-backend/internal"
	playerDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/player"
)

type RepositoryAPI interface {
	ListByAcademy(academyID int64) ([]*Player, error)
	ListAll() ([]*Player, error)
	GetByID(id int64) (*playerDatamodel.Player, error)
	Create(p *playerDatamodel.Player) error
	Update(p *playerDatamodel.Player) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListPlayers returns the roster ordered by category then name. Super admins
// see every academy unless they ask for one specifically.
func (s *Service) ListPlayers(user *errors.SessionUser, requestedAcademyID int64) ([]*Player, error) {
	if user.Role == errors.RoleSuperAdmin && requestedAcademyID == 0 {
		players, err := s.repo.ListAll()
		if err != nil {
			s.logger.Error("failed to list players", "error", err)
			return nil, err
		}
		return players, nil
	}

	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}

	players, err := s.repo.ListByAcademy(academyID)
	if err != nil {
		s.logger.Error("failed to list players", "error", err, "academy_id", academyID)
		return nil, err
	}
	return players, nil
}

func (s *Service) CreatePlayer(user *errors.SessionUser, dto *CreatePlayerDTO) (*playerDatamodel.Player, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	academyID, appErr := errors.ScopedAcademyID(user, dto.AcademyID)
	if appErr != nil {
		return nil, appErr
	}

	row := &playerDatamodel.Player{
		AcademyID:  academyID,
		CategoryID: dto.CategoryID,
		Name:       dto.Name,
		IsActive:   true,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create player", "error", err, "academy_id", academyID)
		return nil, err
	}

	s.logger.Info("player created", "player_id", row.ID, "academy_id", academyID, "name", row.Name)
	return row, nil
}

func (s *Service) UpdatePlayer(user *errors.SessionUser, id int64, dto *UpdatePlayerDTO) (*playerDatamodel.Player, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrPlayerNotFound
	}

	if user.Role != errors.RoleSuperAdmin && row.AcademyID != user.AcademyID {
		return nil, errors.ErrAccessDenied
	}

	if dto.Name != nil {
		row.Name = *dto.Name
	}
	if dto.CategoryID != nil {
		row.CategoryID = *dto.CategoryID
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update player", "error", err, "player_id", id)
		return nil, err
	}

	s.logger.Info("player updated", "player_id", id, "is_active", row.IsActive)
	return row, nil
}
