package user

import (
	"strings"

	errors "github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/core/common/validation"
	userDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/user"
)

type CreateUserDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	AcademyID int64  `json:"academy_id"`
}

func validRole(role string) bool {
	switch role {
	case userDatamodel.RoleViewer, userDatamodel.RoleCoach, userDatamodel.RoleHeadCoach, userDatamodel.RoleSuperAdmin:
		return true
	}
	return false
}

func (d *CreateUserDTO) Validate() error {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))

	validator := validation.NewValidator()
	validator.Field("email", d.Email).Required().MaxLength(254)
	validator.Field("password", d.Password).Required().Custom(func(v interface{}) *errors.AppError {
		if s, ok := v.(string); ok && s != "" && len(s) < 8 {
			return errors.NewValidationFieldError("password", "password must be at least 8 characters", errors.ErrCodeValidationFailed)
		}
		return nil
	})
	validator.Field("role", d.Role).Required().Custom(func(v interface{}) *errors.AppError {
		if s, ok := v.(string); ok && s != "" && !validRole(s) {
			return errors.NewValidationFieldError("role", "role must be one of viewer, coach, head_coach, super_admin", errors.ErrCodeValidationFailed)
		}
		return nil
	})

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	if d.Role != userDatamodel.RoleSuperAdmin && d.AcademyID == 0 {
		return errors.NewValidationFieldError("academy_id", "academy_id is required for academy-scoped roles", errors.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateUserDTO supports role changes, academy moves, password resets and
// deactivation. Nil fields are left untouched.
type UpdateUserDTO struct {
	Role      *string `json:"role,omitempty"`
	AcademyID *int64  `json:"academy_id,omitempty"`
	Password  *string `json:"password,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Role != nil && !validRole(*d.Role) {
		return errors.NewValidationFieldError("role", "role must be one of viewer, coach, head_coach, super_admin", errors.ErrCodeValidationFailed)
	}
	if d.Password != nil && len(*d.Password) < 8 {
		return errors.NewValidationFieldError("password", "password must be at least 8 characters", errors.ErrCodeValidationFailed)
	}
	return nil
}
