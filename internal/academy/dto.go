package academy

import (
	"github.com/alphagrips/academy-backend/internal/core/common/validation"
)

type CreateAcademyDTO struct {
	Name string `json:"name"`
}

func (d *CreateAcademyDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("name", d.Name).Required().MaxLength(120)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
