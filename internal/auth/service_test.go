package auth

import (
	"context"
	"errors"
	"testing"
)

type stubUserStore struct {
	users map[string]Usuario
}

func (s *stubUserStore) Create(ctx context.Context, u *Usuario) error { return nil }
func (s *stubUserStore) List(ctx context.Context) ([]Usuario, error)  { return nil, nil }
func (s *stubUserStore) FindByID(ctx context.Context, id int) (Usuario, error) {
	return Usuario{}, ErrNotFound
}
func (s *stubUserStore) FindByLogin(ctx context.Context, login string) (Usuario, error) {
	u, ok := s.users[login]
	if !ok {
		return Usuario{}, ErrNotFound
	}
	return u, nil
}
func (s *stubUserStore) Update(ctx context.Context, id int, upd UsuarioUpdate) error { return nil }
func (s *stubUserStore) SetActivo(ctx context.Context, id int, activo bool) error    { return nil }
func (s *stubUserStore) Delete(ctx context.Context, id int) error                    { return nil }
func (s *stubUserStore) Metrics(ctx context.Context) (UserMetrics, error) {
	return UserMetrics{}, nil
}

func newTestService(t *testing.T) (*Service, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	hash, err := HashPassword("clave123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store := &stubUserStore{users: map[string]Usuario{
		"admin": {ID: 1, Nombre: "Admin", Usuario: "admin", Rol: RoleAdministrador, Activo: true, PasswordHash: hash},
		"baja":  {ID: 2, Nombre: "Baja", Usuario: "baja", Rol: RoleVoluntario, Activo: false, PasswordHash: hash},
	}}

	svc, err := NewService(store, tokens)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, tokens
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, tokens := newTestService(t)

	res, err := svc.Login(context.Background(), "admin", "clave123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Usuario.ID != 1 || res.Usuario.Rol != RoleAdministrador {
		t.Fatalf("unexpected identity: %+v", res.Usuario)
	}

	id, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if id != res.Usuario {
		t.Fatalf("token identity %+v != login identity %+v", id, res.Usuario)
	}
}

func TestLoginUnknownAndInactiveLookAlike(t *testing.T) {
	svc, _ := newTestService(t)

	_, errUnknown := svc.Login(context.Background(), "nadie", "clave123")
	_, errInactive := svc.Login(context.Background(), "baja", "clave123")

	if !errors.Is(errUnknown, ErrNotFound) {
		t.Fatalf("unknown account: got %v, want ErrNotFound", errUnknown)
	}
	if !errors.Is(errInactive, ErrNotFound) {
		t.Fatalf("inactive account: got %v, want ErrNotFound", errInactive)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Login(context.Background(), "admin", "mala"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestLoginEmptyInput(t *testing.T) {
	svc, _ := newTestService(t)
	for _, c := range []struct{ usuario, contrasena string }{
		{"", "clave123"},
		{"admin", ""},
		{"   ", "clave123"},
	} {
		if _, err := svc.Login(context.Background(), c.usuario, c.contrasena); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Login(%q, %q) = %v, want ErrInvalidInput", c.usuario, c.contrasena, err)
		}
	}
}
