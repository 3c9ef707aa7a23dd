package user

import (
	"log/slog"

	errors "github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/auth"
	userDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	ListAll() ([]*User, error)
	ListByAcademy(academyID int64) ([]*User, error)
	GetByID(id int64) (*userDatamodel.AppUser, error)
	GetByEmail(email string) (*userDatamodel.AppUser, error)
	Create(u *userDatamodel.AppUser) error
	Update(u *userDatamodel.AppUser) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListUsers is super-admin only at the route layer; the optional academy
// filter narrows the result to one academy's staff.
func (s *Service) ListUsers(requestedAcademyID int64) ([]*User, error) {
	if requestedAcademyID != 0 {
		return s.repo.ListByAcademy(requestedAcademyID)
	}
	return s.repo.ListAll()
}

func (s *Service) CreateUser(dto *CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, errors.NewConflictError("a user with this email already exists", errors.ErrCodeEmailTaken)
	}

	hash, err := auth.HashPassword(dto.Password, bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create user", err)
	}

	row := &userDatamodel.AppUser{
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
		AcademyID:    dto.AcademyID,
		IsActive:     true,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", row.ID, "email", row.Email, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) UpdateUser(id int64, dto *UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	if dto.Role != nil {
		row.Role = *dto.Role
	}
	if dto.AcademyID != nil {
		row.AcademyID = *dto.AcademyID
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password, bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, errors.NewInternalError("failed to update user", err)
		}
		row.PasswordHash = hash
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "role", row.Role, "is_active", row.IsActive)
	return FromDataModel(row), nil
}
