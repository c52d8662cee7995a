// Package atenciones holds the patient-referral domain: the records staff
// register when a patient is referred to a specialty, and the aggregates
// the dashboard charts are built from. Records are append-only; there is
// no edit or delete path.
package atenciones

import (
	"context"
	"time"
)

// Atencion is one patient-referral record. Oficial is only populated on
// listings, joined from the responsible officer's account; the reference
// is nullable because officers can be deleted later.
type Atencion struct {
	ID                   int       `json:"id"`
	FechaSolicitud       time.Time `json:"fecha_solicitud"`
	NombrePaciente       string    `json:"nombre_paciente"`
	IdentidadPaciente    string    `json:"identidad_paciente"`
	EdadPaciente         int       `json:"edad_paciente"`
	Especialidad         string    `json:"especialidad"`
	Procedencia          string    `json:"procedencia"`
	MotivoSolicitud      string    `json:"motivo_solicitud"`
	OficialResponsableID *int      `json:"oficial_responsable_id"`
	Oficial              string    `json:"oficial,omitempty"`
	Observaciones        string    `json:"observaciones"`
}

// Rango filters listings by fecha_solicitud. Zero values mean unbounded.
type Rango struct {
	Desde time.Time
	Hasta time.Time
}

// Bounded reports whether both ends of the range are set.
func (r Rango) Bounded() bool {
	return !r.Desde.IsZero() && !r.Hasta.IsZero()
}

// GrupoEspecialidad is a per-specialty count.
type GrupoEspecialidad struct {
	Especialidad string `json:"especialidad"`
	Total        int    `json:"total"`
}

// GrupoProcedencia is a per-origin count.
type GrupoProcedencia struct {
	Procedencia string `json:"procedencia"`
	Total       int    `json:"total"`
}

// ConteoFecha is a per-day count for the last-30-days series.
type ConteoFecha struct {
	Fecha string `json:"fecha"`
	Total int    `json:"total"`
}

// Dashboard feeds the attention charts.
type Dashboard struct {
	TotalAtenciones int                 `json:"totalAtenciones"`
	PorEspecialidad []GrupoEspecialidad `json:"porEspecialidad"`
	PorProcedencia  []GrupoProcedencia  `json:"porProcedencia"`
	Ultimos30       []ConteoFecha       `json:"ultimos30"`
}

// Store persists referral records.
type Store interface {
	// Create inserts the record and fills in its assigned id.
	Create(ctx context.Context, a *Atencion) error
	// List returns records newest first, joined with the responsible
	// officer's name.
	List(ctx context.Context, rango Rango) ([]Atencion, error)
	Dashboard(ctx context.Context) (Dashboard, error)
}
