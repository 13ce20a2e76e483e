package utils

import (
	"errors"
	"fmt"

	"github.com/matthewhartstonge/argon2"
)

var errEmptyPassword = errors.New("password must not be empty")

var argonConfig = argon2.DefaultConfig()

// HashPassword returns the PHC-encoded argon2id hash stored in users.password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	encoded, err := argonConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(encoded), nil
}

// VerifyPassword reports a mismatch as false with a nil error. Errors mean the stored hash is unusable.
func VerifyPassword(encodedHash, password string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	return ok, nil
}
