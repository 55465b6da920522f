package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"TODOLIST_BACK-END/internal/store"
)

// ErrUnauthorized is returned for an unknown username or a wrong password.
// The two causes are deliberately indistinguishable to callers.
var ErrUnauthorized = errors.New("incorrect username or password")

// Authenticator checks Basic Auth credentials against the credential store.
// It keeps no state between calls.
type Authenticator struct {
	users store.UserStore
}

// NewAuthenticator creates a new Authenticator instance
func NewAuthenticator(users store.UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate returns the username when password matches the stored hash.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", ErrUnauthorized
	}

	user, err := a.users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("looking up credentials: %w", err)
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", ErrUnauthorized
	}
	return user.Username, nil
}

// HashPassword derives a salted bcrypt hash from password.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a bcrypt hash with a plaintext candidate.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
