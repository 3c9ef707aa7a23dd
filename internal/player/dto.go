package player

import (
	"github.com/alphagrips/academy-backend/internal/core/common/validation"
)

type CreatePlayerDTO struct {
	AcademyID  int64  `json:"academy_id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

func (d *CreatePlayerDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("name", d.Name).Required().MaxLength(120)
	validator.Field("category_id", d.CategoryID).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// UpdatePlayerDTO carries partial updates: rename, category move, or
// deactivation. Nil fields are left untouched.
type UpdatePlayerDTO struct {
	Name       *string `json:"name,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}
