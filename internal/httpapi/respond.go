package httpapi

import (
	"encoding/json"
	"net/http"
)

// mensaje is the stable client-facing envelope: every non-2xx body and
// every mutation acknowledgement carries it, so the frontend never has
// to branch on response shape.
type mensaje struct {
	Mensaje string `json:"mensaje"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, mensaje{Mensaje: msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
