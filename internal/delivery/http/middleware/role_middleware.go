package middleware

import (
	"net/http"
	"slices"

	"wmhn-clinic-api/pkg/jwt"
	"wmhn-clinic-api/pkg/response"
)

// RequireRole admits requests whose token carries one of the given roles.
// It must run after Authenticate, which puts the role claim in the context.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			switch {
			case !ok:
				response.Unauthorized(w, "Role information not found")
			case !slices.Contains(roles, role):
				response.Forbidden(w, "Directory administration requires an admin account")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAdmin guards the doctor management and audit routes.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(jwt.RoleAdmin)(next)
}
