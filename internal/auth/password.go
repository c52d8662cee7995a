package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt truncates anything beyond 72 bytes.
const maxPasswordLen = 72

// HashPassword derives a salted adaptive hash from a plaintext password.
func HashPassword(contrasena string) (string, error) {
	if contrasena == "" {
		return "", errors.New("auth: password is empty")
	}
	if len(contrasena) > maxPasswordLen {
		return "", errors.New("auth: password exceeds 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored hash.
// The comparison is intentionally slow; never cache or short-circuit it.
func VerifyPassword(hash, contrasena string) error {
	if hash == "" {
		return errors.New("auth: password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(contrasena))
}
