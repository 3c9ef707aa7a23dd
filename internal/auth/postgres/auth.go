package postgres

import (
	"github.com/alphagrips/academy-backend/internal/auth"
	userDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository loads credential rows for the auth service.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetActiveUserByEmail(email string) (*auth.AccountRecord, error) {
	var u userDatamodel.AppUser
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&u).Error
	if err != nil {
		return nil, err
	}
	return toAccountRecord(&u), nil
}

func (r *AuthRepository) GetActiveUserByID(userID int64) (*auth.AccountRecord, error) {
	var u userDatamodel.AppUser
	err := r.db.Where("id = ? AND is_active = ?", userID, true).First(&u).Error
	if err != nil {
		return nil, err
	}
	return toAccountRecord(&u), nil
}

func toAccountRecord(u *userDatamodel.AppUser) *auth.AccountRecord {
	return &auth.AccountRecord{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		AcademyID:    u.AcademyID,
		IsActive:     u.IsActive,
	}
}
