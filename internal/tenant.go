package internal

const RoleSuperAdmin = "super_admin"

// ScopedAcademyID resolves which academy a request may operate on. A super
// admin may target any academy via an explicit id; everyone else is pinned to
// the academy on their token regardless of what they asked for.
func ScopedAcademyID(user *SessionUser, requested int64) (int64, *AppError) {
	if user == nil {
		return 0, ErrAccessDenied
	}
	if user.Role == RoleSuperAdmin {
		if requested == 0 {
			return 0, NewValidationError("academy_id is required", ErrCodeValidationFailed)
		}
		return requested, nil
	}
	return user.AcademyID, nil
}
