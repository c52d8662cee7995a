package httpapi

import (
	"net/http"

	"atp-hospital/internal/audit"
)

func (a *API) handleListarBitacora(w http.ResponseWriter, r *http.Request) {
	desde, hasta, ok := rangoQuery(w, r)
	if !ok {
		return
	}
	res, err := a.bitacora.List(r.Context(), audit.Rango{Desde: desde, Hasta: hasta})
	if err != nil {
		a.serverError(w, r, "list audit log failed", err)
		return
	}
	if res == nil {
		res = []audit.EntradaDetalle{}
	}
	writeJSON(w, http.StatusOK, res)
}
