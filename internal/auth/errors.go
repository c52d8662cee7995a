package auth

import "errors"

var (
	// ErrAuthRequired means no credential was presented at all.
	ErrAuthRequired = errors.New("auth: token required")
	// ErrInvalidToken covers malformed, expired and badly signed tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrForbidden means a valid identity lacks the role for the route.
	ErrForbidden = errors.New("auth: access denied")
	// ErrNotFound means no matching active account or record exists.
	ErrNotFound = errors.New("auth: not found")
	// ErrUnauthorized means the credential was present but the password
	// did not match.
	ErrUnauthorized = errors.New("auth: invalid credentials")
	// ErrConflict is a uniqueness violation surfaced by the store.
	ErrConflict = errors.New("auth: already exists")
	// ErrInvalidInput rejects malformed request payloads.
	ErrInvalidInput = errors.New("auth: invalid input")
)
