package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	want := Identity{ID: 7, Nombre: "Ana López", Rol: RoleOficialATP}
	token, _, err := svc.Issue(want)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != want {
		t.Fatalf("identity mismatch: got %+v want %+v", got, want)
	}

	// Verification must not consume the token.
	again, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if again != want {
		t.Fatalf("second verify mismatch: got %+v", again)
	}
}

func TestTokenExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	now := issued
	svc, err := NewTokenService("test-secret",
		WithTTL(8*time.Hour),
		WithClock(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	token, expiresAt, err := svc.Issue(Identity{ID: 1, Nombre: "Admin", Rol: RoleAdministrador})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if want := issued.Add(8 * time.Hour); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", expiresAt, want)
	}

	now = expiresAt.Add(-time.Second)
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("verify just before expiry: %v", err)
	}

	// Exactly at the expiry instant the token is already invalid.
	now = expiresAt
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify at expiry: got %v, want ErrInvalidToken", err)
	}

	now = expiresAt.Add(time.Minute)
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify after expiry: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuerSvc, err := NewTokenService("secret-a")
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	verifierSvc, err := NewTokenService("secret-b")
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	token, _, err := issuerSvc.Issue(Identity{ID: 3, Nombre: "Eva", Rol: RoleVoluntario})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifierSvc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q) = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestIssueRejectsInvalidIdentity(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	if _, _, err := svc.Issue(Identity{Nombre: "sin id", Rol: RoleVoluntario}); err == nil {
		t.Fatal("expected error for identity without id")
	}
	if _, _, err := svc.Issue(Identity{ID: 4, Nombre: "rol raro", Rol: Role("superusuario")}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
