package httpapi

import (
	"net/http"
	"strings"

	"atp-hospital/internal/auth"
	"atp-hospital/internal/obs"
)

// Authenticate verifies the bearer token and attaches the caller's
// identity to the request context. A request with no Authorization
// header at all is distinct from one that presented a bad token: the
// first gets 401, the second 403.
func (a *API) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Token requerido")
			return
		}
		token, ok := bearerToken(header)
		if !ok {
			writeError(w, http.StatusForbidden, "Token inválido")
			return
		}
		id, err := a.tokens.Verify(token)
		if err != nil {
			obs.Log("warn", "token rejected", map[string]any{
				"request_id": RequestIDFromContext(r.Context()),
				"path":       r.URL.Path,
			})
			writeError(w, http.StatusForbidden, "Token inválido")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(r.Context(), id)))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
