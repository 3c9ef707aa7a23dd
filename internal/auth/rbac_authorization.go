package auth

import (
	"log/slog"
	"net/http"

	"github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/core/datamodel/user"
)

// RBACAuthorization gates mutating routes on role membership. Roles come from
// the JWT claims; there is no permission table.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionUser, ok := internal.UserFromContext(r.Context())
			if !ok || sessionUser == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if _, ok := allowed[sessionUser.Role]; !ok {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", sessionUser.ID,
					"role", sessionUser.Role,
					"required_roles", roles)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCoachingStaff guards roster and match mutations.
func (ra *RBACAuthorization) RequireCoachingStaff() func(http.Handler) http.Handler {
	return ra.RequireRoles(user.RoleCoach, user.RoleHeadCoach, user.RoleSuperAdmin)
}

// RequireFinanceAdmin guards fee schedules, overrides, manual payments and
// payment deletion.
func (ra *RBACAuthorization) RequireFinanceAdmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(user.RoleHeadCoach, user.RoleSuperAdmin)
}

// RequireSuperAdmin guards academy and user administration.
func (ra *RBACAuthorization) RequireSuperAdmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(user.RoleSuperAdmin)
}
