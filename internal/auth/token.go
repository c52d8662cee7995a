package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "atp-hospital"

// Claims carries the identity fields embedded at issuance. The JSON keys
// match the wire format clients already decode: {id, nombre, rol}.
type Claims struct {
	UserID int    `json:"id"`
	Nombre string `json:"nombre"`
	Rol    Role   `json:"rol"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed identity tokens. Tokens are not
// revocable before expiry; there is no server-side blacklist.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTTL overrides the default validity window.
func WithTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source (test use).
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

const defaultTTL = 8 * time.Hour

// NewTokenService builds a TokenService signing with HS256.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	s := &TokenService{
		secret: []byte(secret),
		ttl:    defaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token embedding the identity as it exists right now. A
// later role change does not affect tokens already in the wild.
func (s *TokenService) Issue(id Identity) (string, time.Time, error) {
	if id.ID <= 0 {
		return "", time.Time{}, errors.New("auth: identity id is required")
	}
	if !id.Rol.Valid() {
		return "", time.Time{}, errors.New("auth: identity role is invalid")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID: id.ID,
		Nombre: id.Nombre,
		Rol:    id.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.Itoa(id.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// A token presented exactly at its expiry instant is rejected. Any failure
// collapses into ErrInvalidToken so callers cannot leak verification
// detail to clients.
func (s *TokenService) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.UserID <= 0 || !claims.Rol.Valid() {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: claims.UserID, Nombre: claims.Nombre, Rol: claims.Rol}, nil
}
