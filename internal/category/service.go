package category

import (
	"log/slog"

	errors "github.com/alphagrips/academy-backend/internal"
	categoryDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetByAcademy(academyID int64) ([]*categoryDatamodel.Category, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	Create(c *categoryDatamodel.Category) error
	Update(c *categoryDatamodel.Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListCategories(user *errors.SessionUser, requestedAcademyID int64) ([]*Category, error) {
	academyID, appErr := errors.ScopedAcademyID(user, requestedAcademyID)
	if appErr != nil {
		return nil, appErr
	}

	rows, err := s.repo.GetByAcademy(academyID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "academy_id", academyID)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) CreateCategory(user *errors.SessionUser, dto *CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	academyID, appErr := errors.ScopedAcademyID(user, dto.AcademyID)
	if appErr != nil {
		return nil, appErr
	}

	row := &categoryDatamodel.Category{
		AcademyID:    academyID,
		Name:         dto.Name,
		DisplayOrder: dto.DisplayOrder,
		IsActive:     true,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create category", "error", err, "academy_id", academyID)
		return nil, err
	}

	s.logger.Info("category created", "category_id", row.ID, "academy_id", academyID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) UpdateCategory(user *errors.SessionUser, id int64, dto *UpdateCategoryDTO) (*Category, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrCategoryNotFound
	}

	if user.Role != errors.RoleSuperAdmin && row.AcademyID != user.AcademyID {
		return nil, errors.ErrAccessDenied
	}

	if dto.Name != nil {
		row.Name = *dto.Name
	}
	if dto.DisplayOrder != nil {
		row.DisplayOrder = *dto.DisplayOrder
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}

	s.logger.Info("category updated", "category_id", id, "is_active", row.IsActive)
	return FromDataModel(row), nil
}
