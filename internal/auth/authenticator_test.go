package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"TODOLIST_BACK-END/internal/models"
	"TODOLIST_BACK-END/internal/store"
)

type failingUsers struct {
	store.UserStore
	err error
}

func (f failingUsers) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, f.err
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryStore()

	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.CreateUser(ctx, models.User{Username: "alice", PasswordHash: hash}))

	authenticator := NewAuthenticator(users)

	tests := []struct {
		name     string
		username string
		password string
		wantUser string
		wantErr  error
	}{
		{name: "valid credentials", username: "alice", password: "s3cret", wantUser: "alice"},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrUnauthorized},
		{name: "empty password", username: "alice", password: "", wantErr: ErrUnauthorized},
		{name: "unknown user", username: "bob", password: "s3cret", wantErr: ErrUnauthorized},
		{name: "empty username", username: "", password: "s3cret", wantErr: ErrUnauthorized},
		{name: "username is case sensitive", username: "Alice", password: "s3cret", wantErr: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authenticator.Authenticate(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	authenticator := NewAuthenticator(failingUsers{err: boom})

	_, err := authenticator.Authenticate(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "same")
	assert.NoError(t, CheckPassword(first, "same"))
	assert.NoError(t, CheckPassword(second, "same"))
	assert.Error(t, CheckPassword(first, "different"))
}
