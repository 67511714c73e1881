package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost defines the bcrypt work factor.
const bcryptCost = 12

// minPasswordLength is the shortest password accepted when provisioning.
const minPasswordLength = 8

// ErrWeakPassword indicates a password that fails the provisioning policy.
var ErrWeakPassword = errors.New("password too short")

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateNewPassword enforces the password policy for new identities.
func ValidateNewPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
