// Package httpapi is the HTTP boundary: routing, authentication,
// role gating and the JSON envelope the frontend consumes.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"atp-hospital/internal/atenciones"
	"atp-hospital/internal/audit"
	"atp-hospital/internal/auth"
	"atp-hospital/internal/obs"
)

// Role allow-lists, declared next to the route table so the whole
// authorization surface can be audited at a glance.
var (
	soloAdmin     = []auth.Role{auth.RoleAdministrador}
	adminYOficial = []auth.Role{auth.RoleAdministrador, auth.RoleOficialATP}
	todosLosRoles = []auth.Role{auth.RoleAdministrador, auth.RoleOficialATP, auth.RoleVoluntario}
)

// ReadyProbe is the readiness check (ping to the database).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Options carries everything the HTTP layer depends on.
type Options struct {
	Auth       *auth.Service
	Tokens     *auth.TokenService
	Users      auth.UserStore
	Atenciones atenciones.Store
	Bitacora   audit.Store
	Recorder   *audit.Recorder
	Ready      ReadyProbe
	Version    string

	// Rate limiting knobs; zero values fall back to sane defaults.
	RateBurst  int
	RatePerSec int
}

// API is the HTTP layer.
type API struct {
	router     chi.Router
	auth       *auth.Service
	tokens     *auth.TokenService
	users      auth.UserStore
	atenciones atenciones.Store
	bitacora   audit.Store
	recorder   *audit.Recorder
	readyProbe ReadyProbe
	version    string
}

func New(opts Options) *API {
	if opts.RateBurst <= 0 {
		opts.RateBurst = 50
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 25
	}
	a := &API{
		auth:       opts.Auth,
		tokens:     opts.Tokens,
		users:      opts.Users,
		atenciones: opts.Atenciones,
		bitacora:   opts.Bitacora,
		recorder:   opts.Recorder,
		readyProbe: opts.Ready,
		version:    opts.Version,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(SecurityHeaders)
	r.Use(CORS)
	r.Use(func(next http.Handler) http.Handler { return MaxBodyBytes(next, 1<<20) })
	r.Use(func(next http.Handler) http.Handler { return RateLimit(next, opts.RateBurst, opts.RatePerSec) })
	r.Use(LoggingJSON)

	r.Get("/healthz", a.Healthz)
	r.Get("/readyz", a.Ready)
	r.Handle("/metrics", obs.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", a.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(a.Authenticate)

			r.Route("/usuarios", func(r chi.Router) {
				r.Use(RequireRoles(soloAdmin...))
				r.Post("/", a.handleCrearUsuario)
				r.Get("/", a.handleListarUsuarios)
				r.Get("/dashboard", a.handleUsuariosDashboard)
				r.Put("/activar/{id}", a.handleActivarUsuario)
				r.Put("/desactivar/{id}", a.handleDesactivarUsuario)
				r.Put("/{id}", a.handleActualizarUsuario)
				r.Delete("/{id}", a.handleEliminarUsuario)
			})

			r.Route("/atenciones", func(r chi.Router) {
				r.With(RequireRoles(adminYOficial...)).Post("/", a.handleCrearAtencion)
				r.With(RequireRoles(todosLosRoles...)).Get("/", a.handleListarAtenciones)
				r.With(RequireRoles(adminYOficial...)).Get("/dashboard", a.handleAtencionesDashboard)
			})

			r.With(RequireRoles(soloAdmin...)).Get("/bitacora", a.handleListarBitacora)
		})
	})

	a.router = r
	return a
}

// Handler returns the server handler, wrapped with request metrics.
func (a *API) Handler() http.Handler {
	return obs.Instrument(a.router)
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "atp-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
