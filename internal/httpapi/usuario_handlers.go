package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"atp-hospital/internal/audit"
	"atp-hospital/internal/auth"
	"atp-hospital/internal/obs"
)

func (a *API) handleCrearUsuario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nombre     string `json:"nombre"`
		Usuario    string `json:"usuario"`
		Contrasena string `json:"contrasena"`
		Rol        string `json:"rol"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Usuario = strings.TrimSpace(req.Usuario)
	if req.Nombre == "" || req.Usuario == "" || req.Contrasena == "" {
		writeError(w, http.StatusBadRequest, "Todos los campos son requeridos")
		return
	}
	rol, ok := auth.ParseRole(req.Rol)
	if !ok {
		writeError(w, http.StatusBadRequest, "Rol inválido")
		return
	}
	hash, err := auth.HashPassword(req.Contrasena)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Contraseña inválida")
		return
	}

	u := auth.Usuario{
		Nombre:       req.Nombre,
		Usuario:      req.Usuario,
		Rol:          rol,
		PasswordHash: hash,
	}
	if err := a.users.Create(r.Context(), &u); err != nil {
		if errors.Is(err, auth.ErrConflict) {
			writeError(w, http.StatusConflict, "El nombre de usuario ya existe")
			return
		}
		a.serverError(w, r, "create user failed", err)
		return
	}

	a.recorder.Record(r.Context(), audit.ActionCrear,
		fmt.Sprintf("Creó el usuario %s (%s) con rol %s", u.Nombre, u.Usuario, u.Rol),
		audit.ModuleUsuarios)
	writeJSON(w, http.StatusOK, struct {
		Mensaje string `json:"mensaje"`
		ID      int    `json:"id"`
	}{"Usuario creado correctamente", u.ID})
}

func (a *API) handleListarUsuarios(w http.ResponseWriter, r *http.Request) {
	res, err := a.users.List(r.Context())
	if err != nil {
		a.serverError(w, r, "list users failed", err)
		return
	}
	if res == nil {
		res = []auth.Usuario{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) handleActualizarUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Nombre     string `json:"nombre"`
		Usuario    string `json:"usuario"`
		Contrasena string `json:"contrasena"`
		Rol        string `json:"rol"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Usuario = strings.TrimSpace(req.Usuario)
	if req.Nombre == "" || req.Usuario == "" {
		writeError(w, http.StatusBadRequest, "Todos los campos son requeridos")
		return
	}
	rol, ok := auth.ParseRole(req.Rol)
	if !ok {
		writeError(w, http.StatusBadRequest, "Rol inválido")
		return
	}

	upd := auth.UsuarioUpdate{Nombre: req.Nombre, Usuario: req.Usuario, Rol: rol}
	if strings.TrimSpace(req.Contrasena) != "" {
		hash, err := auth.HashPassword(req.Contrasena)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Contraseña inválida")
			return
		}
		upd.PasswordHash = &hash
	}

	if err := a.users.Update(r.Context(), id, upd); err != nil {
		switch {
		case errors.Is(err, auth.ErrNotFound):
			writeError(w, http.StatusNotFound, "Usuario no encontrado")
		case errors.Is(err, auth.ErrConflict):
			writeError(w, http.StatusConflict, "El nombre de usuario ya existe")
		default:
			a.serverError(w, r, "update user failed", err)
		}
		return
	}

	a.recorder.Record(r.Context(), audit.ActionActualizar,
		fmt.Sprintf("Actualizó usuario con ID %d", id), audit.ModuleUsuarios)
	writeError(w, http.StatusOK, "Usuario actualizado correctamente")
}

func (a *API) handleActivarUsuario(w http.ResponseWriter, r *http.Request) {
	a.setActivo(w, r, true)
}

func (a *API) handleDesactivarUsuario(w http.ResponseWriter, r *http.Request) {
	a.setActivo(w, r, false)
}

func (a *API) setActivo(w http.ResponseWriter, r *http.Request, activo bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.users.SetActivo(r.Context(), id, activo); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		a.serverError(w, r, "set user active failed", err)
		return
	}

	if activo {
		a.recorder.Record(r.Context(), audit.ActionActivar,
			fmt.Sprintf("Activó usuario con ID %d", id), audit.ModuleUsuarios)
		writeError(w, http.StatusOK, "Usuario activado correctamente")
		return
	}
	a.recorder.Record(r.Context(), audit.ActionDesactivar,
		fmt.Sprintf("Desactivó usuario con ID %d", id), audit.ModuleUsuarios)
	writeError(w, http.StatusOK, "Usuario desactivado correctamente")
}

func (a *API) handleEliminarUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		a.serverError(w, r, "delete user failed", err)
		return
	}

	a.recorder.Record(r.Context(), audit.ActionEliminar,
		fmt.Sprintf("Eliminó usuario con ID %d", id), audit.ModuleUsuarios)
	writeError(w, http.StatusOK, "Usuario eliminado correctamente")
}

func (a *API) handleUsuariosDashboard(w http.ResponseWriter, r *http.Request) {
	m, err := a.users.Metrics(r.Context())
	if err != nil {
		a.serverError(w, r, "user metrics failed", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Identificador inválido")
		return 0, false
	}
	return id, true
}

// serverError hides store failures behind the generic envelope and logs
// the detail with the actor when one is attached.
func (a *API) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	fields := map[string]any{
		"request_id": RequestIDFromContext(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
		"error":      err.Error(),
	}
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		fields["usuario_id"] = id.ID
	}
	obs.Log("error", msg, fields)
	writeError(w, http.StatusInternalServerError, "Error en el servidor")
}
