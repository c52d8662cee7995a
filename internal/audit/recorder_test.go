package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"atp-hospital/internal/auth"
)

type stubStore struct {
	entries []Entrada
	err     error
}

func (s *stubStore) Append(ctx context.Context, e *Entrada) error {
	if s.err != nil {
		return s.err
	}
	e.ID = len(s.entries) + 1
	s.entries = append(s.entries, *e)
	return nil
}

func (s *stubStore) List(ctx context.Context, rango Rango) ([]EntradaDetalle, error) {
	return nil, nil
}

func TestRecordAttributesActor(t *testing.T) {
	fixed := time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC)
	store := &stubStore{}
	rec := NewRecorder(store, WithClock(func() time.Time { return fixed }))

	ctx := auth.ContextWithIdentity(context.Background(),
		auth.Identity{ID: 5, Nombre: "Admin", Rol: auth.RoleAdministrador})
	rec.Record(ctx, ActionDesactivar, "Desactivó usuario con ID 7", ModuleUsuarios)

	if len(store.entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(store.entries))
	}
	e := store.entries[0]
	if e.UsuarioID == nil || *e.UsuarioID != 5 {
		t.Fatalf("actor = %v, want 5", e.UsuarioID)
	}
	if e.Accion != ActionDesactivar || e.Modulo != ModuleUsuarios {
		t.Fatalf("unexpected verb/module: %q %q", e.Accion, e.Modulo)
	}
	if e.Descripcion != "Desactivó usuario con ID 7" {
		t.Fatalf("unexpected description: %q", e.Descripcion)
	}
	if !e.Fecha.Equal(fixed) {
		t.Fatalf("fecha = %v, want %v", e.Fecha, fixed)
	}
}

func TestRecordDropsEntryWithoutIdentity(t *testing.T) {
	store := &stubStore{}
	rec := NewRecorder(store)

	rec.Record(context.Background(), ActionCrear, "sin actor", ModuleUsuarios)

	if len(store.entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(store.entries))
	}
}

func TestRecordSwallowsStoreFailure(t *testing.T) {
	store := &stubStore{err: errors.New("disk full")}
	rec := NewRecorder(store)

	ctx := auth.ContextWithIdentity(context.Background(),
		auth.Identity{ID: 1, Nombre: "Admin", Rol: auth.RoleAdministrador})

	// Must not panic and must not surface the error to the caller.
	rec.Record(ctx, ActionEliminar, "Eliminó usuario con ID 2", ModuleUsuarios)
}
