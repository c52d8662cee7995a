package audit

import (
	"context"
	"time"

	"atp-hospital/internal/auth"
	"atp-hospital/internal/obs"
)

// Recorder appends audit entries attributed to the authenticated identity
// on the context. Handlers call it synchronously, right after the business
// mutation commits.
type Recorder struct {
	store Store
	now   func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithClock overrides the timestamp source (test use).
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder builds a Recorder over the given store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends one entry with a server-assigned timestamp. There is no
// transaction spanning the business write and the audit write: if the
// append fails the entry is lost and only the operator console hears
// about it. Callers therefore never see an error here.
func (r *Recorder) Record(ctx context.Context, accion Action, descripcion string, modulo Module) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		obs.Log("error", "audit entry dropped", map[string]any{
			"reason": "no_identity",
			"accion": string(accion),
			"modulo": string(modulo),
		})
		return
	}

	actorID := identity.ID
	entry := &Entrada{
		Fecha:       r.now().UTC(),
		UsuarioID:   &actorID,
		Accion:      accion,
		Descripcion: descripcion,
		Modulo:      modulo,
	}
	if err := r.store.Append(ctx, entry); err != nil {
		obs.Log("error", "audit append failed", map[string]any{
			"error":      err.Error(),
			"usuario_id": actorID,
			"accion":     string(accion),
			"modulo":     string(modulo),
		})
	}
}
