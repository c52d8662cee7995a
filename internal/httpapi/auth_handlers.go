package httpapi

import (
	"errors"
	"net/http"

	"atp-hospital/internal/auth"
	"atp-hospital/internal/obs"
)

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Usuario    string `json:"usuario"`
		Contrasena string `json:"contrasena"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}

	res, err := a.auth.Login(r.Context(), req.Usuario, req.Contrasena)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Usuario y contraseña son requeridos")
	case errors.Is(err, auth.ErrNotFound):
		writeError(w, http.StatusNotFound, "Usuario no encontrado o inactivo")
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Contraseña incorrecta")
	default:
		obs.Log("error", "login failed", map[string]any{
			"request_id": RequestIDFromContext(r.Context()),
			"error":      err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "Error en el servidor")
	}
}
