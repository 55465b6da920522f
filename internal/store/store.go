package store

import (
	"context"
	"errors"

	"TODOLIST_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist, or exists but is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrUserExists is returned when registering a username that is already taken.
	ErrUserExists = errors.New("username already registered")
)

// UserStore persists credentials.
type UserStore interface {
	// CreateUser inserts a user, failing with ErrUserExists on a duplicate username.
	CreateUser(ctx context.Context, user models.User) error
	// GetUserByUsername returns ErrNotFound when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TodoStore persists todos. Update and delete are scoped by owner so a
// caller can never modify a row it does not own.
type TodoStore interface {
	// ListTodos returns the owner's todos in id (insertion) order, never nil.
	ListTodos(ctx context.Context, owner string) ([]models.Todo, error)
	// CreateTodo assigns todo.ID and persists the row.
	CreateTodo(ctx context.Context, todo *models.Todo) error
	// GetTodo returns ErrNotFound when the id does not exist.
	GetTodo(ctx context.Context, id int64) (*models.Todo, error)
	// UpdateTodo replaces title and completed of the row matching todo.ID and todo.Owner.
	UpdateTodo(ctx context.Context, todo models.Todo) error
	// DeleteTodo removes the row matching id and owner.
	DeleteTodo(ctx context.Context, id int64, owner string) error
}

// Store is the full persistence surface used by the API.
type Store interface {
	UserStore
	TodoStore

	// Name identifies the backend in logs and health output.
	Name() string
	Ping(ctx context.Context) error
	Close() error
}
