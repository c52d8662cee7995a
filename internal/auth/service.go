package auth

import (
	"context"
	"errors"
	"strings"

	"atp-hospital/internal/obs"
)

// Service authenticates credentials and mints identity tokens.
type Service struct {
	users  UserStore
	tokens *TokenService
}

// NewService wires the credential store and the token issuer.
func NewService(users UserStore, tokens *TokenService) (*Service, error) {
	if users == nil {
		return nil, errors.New("auth: user store is required")
	}
	if tokens == nil {
		return nil, errors.New("auth: token service is required")
	}
	return &Service{users: users, tokens: tokens}, nil
}

// LoginResult is the exact payload returned to clients on success.
type LoginResult struct {
	Token   string   `json:"token"`
	Usuario Identity `json:"usuario"`
}

// Login verifies credentials against the store and issues a token for the
// account as it exists at this instant. A missing account and a
// deactivated account both surface as ErrNotFound; the distinction lives
// only in the server log.
func (s *Service) Login(ctx context.Context, usuario, contrasena string) (LoginResult, error) {
	usuario = strings.TrimSpace(usuario)
	if usuario == "" || contrasena == "" {
		return LoginResult{}, ErrInvalidInput
	}

	u, err := s.users.FindByLogin(ctx, usuario)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			obs.Log("warn", "login rejected", map[string]any{
				"reason":  "account_not_found",
				"usuario": usuario,
			})
			return LoginResult{}, ErrNotFound
		}
		return LoginResult{}, err
	}
	if !u.Activo {
		obs.Log("warn", "login rejected", map[string]any{
			"reason":  "account_inactive",
			"usuario": usuario,
		})
		return LoginResult{}, ErrNotFound
	}

	if err := VerifyPassword(u.PasswordHash, contrasena); err != nil {
		obs.Log("warn", "login rejected", map[string]any{
			"reason":  "bad_password",
			"usuario": usuario,
		})
		return LoginResult{}, ErrUnauthorized
	}

	identity := IdentityOf(u)
	token, _, err := s.tokens.Issue(identity)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Usuario: identity}, nil
}
