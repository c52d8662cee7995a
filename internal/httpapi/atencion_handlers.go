package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"atp-hospital/internal/atenciones"
	"atp-hospital/internal/audit"
	"atp-hospital/internal/auth"
)

const fechaLayout = "2006-01-02"

func (a *API) handleCrearAtencion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FechaSolicitud    string `json:"fecha_solicitud"`
		NombrePaciente    string `json:"nombre_paciente"`
		IdentidadPaciente string `json:"identidad_paciente"`
		EdadPaciente      int    `json:"edad_paciente"`
		Especialidad      string `json:"especialidad"`
		Procedencia       string `json:"procedencia"`
		MotivoSolicitud   string `json:"motivo_solicitud"`
		Observaciones     string `json:"observaciones"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	req.NombrePaciente = strings.TrimSpace(req.NombrePaciente)
	if req.FechaSolicitud == "" || req.NombrePaciente == "" {
		writeError(w, http.StatusBadRequest, "Datos de atención incompletos")
		return
	}
	fecha, err := time.Parse(fechaLayout, req.FechaSolicitud)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Fecha de solicitud inválida")
		return
	}

	// Authenticate already ran; the responsible officer is the caller.
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	at := atenciones.Atencion{
		FechaSolicitud:       fecha,
		NombrePaciente:       req.NombrePaciente,
		IdentidadPaciente:    req.IdentidadPaciente,
		EdadPaciente:         req.EdadPaciente,
		Especialidad:         req.Especialidad,
		Procedencia:          req.Procedencia,
		MotivoSolicitud:      req.MotivoSolicitud,
		OficialResponsableID: &id.ID,
		Observaciones:        req.Observaciones,
	}
	if err := a.atenciones.Create(r.Context(), &at); err != nil {
		a.serverError(w, r, "create attention failed", err)
		return
	}

	a.recorder.Record(r.Context(), audit.ActionCrear,
		fmt.Sprintf("Registró atención para %s", at.NombrePaciente),
		audit.ModuleAtenciones)
	writeJSON(w, http.StatusOK, struct {
		Mensaje string `json:"mensaje"`
		ID      int    `json:"id"`
	}{"Atención registrada correctamente", at.ID})
}

func (a *API) handleListarAtenciones(w http.ResponseWriter, r *http.Request) {
	desde, hasta, ok := rangoQuery(w, r)
	if !ok {
		return
	}
	res, err := a.atenciones.List(r.Context(), atenciones.Rango{Desde: desde, Hasta: hasta})
	if err != nil {
		a.serverError(w, r, "list attentions failed", err)
		return
	}
	if res == nil {
		res = []atenciones.Atencion{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) handleAtencionesDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := a.atenciones.Dashboard(r.Context())
	if err != nil {
		a.serverError(w, r, "attention dashboard failed", err)
		return
	}
	if d.PorEspecialidad == nil {
		d.PorEspecialidad = []atenciones.GrupoEspecialidad{}
	}
	if d.PorProcedencia == nil {
		d.PorProcedencia = []atenciones.GrupoProcedencia{}
	}
	if d.Ultimos30 == nil {
		d.Ultimos30 = []atenciones.ConteoFecha{}
	}
	writeJSON(w, http.StatusOK, d)
}

// rangoQuery parses the optional desde/hasta filter. Both ends must be
// present together; a lone or malformed bound is rejected.
func rangoQuery(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	desdeRaw := r.URL.Query().Get("desde")
	hastaRaw := r.URL.Query().Get("hasta")
	if desdeRaw == "" && hastaRaw == "" {
		return time.Time{}, time.Time{}, true
	}
	desde, err1 := time.Parse(fechaLayout, desdeRaw)
	hasta, err2 := time.Parse(fechaLayout, hastaRaw)
	if err1 != nil || err2 != nil || hasta.Before(desde) {
		writeError(w, http.StatusBadRequest, "Rango de fechas inválido")
		return time.Time{}, time.Time{}, false
	}
	return desde, hasta, true
}
