package category

import (
	"github.com/alphagrips/academy-backend/internal/core/common/validation"
)

type CreateCategoryDTO struct {
	AcademyID    int64  `json:"academy_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

func (d *CreateCategoryDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("name", d.Name).Required().MaxLength(80)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// UpdateCategoryDTO carries partial updates; nil fields are left untouched.
// IsActive=false is the soft-deactivate path, there is no hard delete.
type UpdateCategoryDTO struct {
	Name         *string `json:"name,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
