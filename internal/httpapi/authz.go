package httpapi

import (
	"net/http"

	"atp-hospital/internal/auth"
	"atp-hospital/internal/obs"
)

// RequireRoles gates a route on the identity attached by Authenticate.
// It never treats an absent identity as any role: a request that
// somehow reaches it unauthenticated gets 401, not a role check.
func RequireRoles(allowed ...auth.Role) func(http.Handler) http.Handler {
	allow := make(map[auth.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allow[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Token requerido")
				return
			}
			if _, ok := allow[id.Rol]; !ok {
				obs.Log("warn", "access denied", map[string]any{
					"request_id": RequestIDFromContext(r.Context()),
					"usuario_id": id.ID,
					"rol":        id.Rol,
					"method":     r.Method,
					"path":       r.URL.Path,
				})
				writeError(w, http.StatusForbidden, "Acceso denegado")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
