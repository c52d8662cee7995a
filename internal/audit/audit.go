package audit

import (
	"context"
	"time"
)

// Action enumerates the audit verbs. The rendered strings must stay
// byte-identical to the historical log so existing entries and consumers
// keep working.
type Action string

const (
	ActionCrear      Action = "crear"
	ActionActualizar Action = "actualizar"
	ActionActivar    Action = "activar"
	ActionDesactivar Action = "desactivar"
	ActionEliminar   Action = "eliminar"
)

// Module tags the subsystem an entry belongs to.
type Module string

const (
	ModuleUsuarios   Module = "usuarios"
	ModuleAtenciones Module = "atenciones"
)

// Entrada is one append-only audit row. Entries are never updated or
// deleted by the application.
type Entrada struct {
	ID          int       `json:"id"`
	Fecha       time.Time `json:"fecha"`
	UsuarioID   *int      `json:"usuario_id"`
	Accion      Action    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	Modulo      Module    `json:"modulo"`
}

// EntradaDetalle is a listing row joined with the actor. Usuario and Rol
// come back empty when the actor account was deleted after the fact.
type EntradaDetalle struct {
	ID          int       `json:"id"`
	Fecha       time.Time `json:"fecha"`
	Usuario     string    `json:"usuario"`
	Rol         string    `json:"rol"`
	Accion      Action    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	Modulo      Module    `json:"modulo"`
}

// Rango filters a listing by entry date. Zero values mean unbounded.
type Rango struct {
	Desde time.Time
	Hasta time.Time
}

// Bounded reports whether both ends of the range are set.
func (r Rango) Bounded() bool {
	return !r.Desde.IsZero() && !r.Hasta.IsZero()
}

// Store persists audit entries.
type Store interface {
	Append(ctx context.Context, e *Entrada) error
	List(ctx context.Context, rango Rango) ([]EntradaDetalle, error)
}
