package auth

import (
	"strings"
	"testing"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3creta")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3creta" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := VerifyPassword(hash, "s3creta"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := VerifyPassword(hash, "otra"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestPasswordLimits(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
	if _, err := HashPassword(strings.Repeat("x", 73)); err == nil {
		t.Fatal("expected error for password over 72 bytes")
	}
}

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"administrador": RoleAdministrador,
		" Oficial_ATP ": RoleOficialATP,
		"VOLUNTARIO":    RoleVoluntario,
	} {
		got, ok := ParseRole(raw)
		if !ok || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	for _, raw := range []string{"", "root", "admin"} {
		if _, ok := ParseRole(raw); ok {
			t.Fatalf("ParseRole(%q) accepted", raw)
		}
	}
}
