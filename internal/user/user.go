package user

import (
	"time"

	userDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/user"
)

// User is the account view returned to admins. The password hash never
// leaves the service layer.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AcademyID   int64     `json:"academy_id"`
	AcademyName string    `json:"academy_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromDataModel(dm *userDatamodel.AppUser) *User {
	return &User{
		ID:        dm.ID,
		Email:     dm.Email,
		Role:      dm.Role,
		AcademyID: dm.AcademyID,
		IsActive:  dm.IsActive,
		CreatedAt: dm.CreatedAt,
	}
}
