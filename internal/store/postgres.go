package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"TODOLIST_BACK-END/internal/models"
)

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already connected pool and applies pending migrations.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Name implements Store.
func (s *PostgresStore) Name() string { return "postgres" }

// Ping implements Store.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	currentVersion := 0

	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT to_regclass('schema_version') IS NOT NULL").Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if exists {
		err = s.pool.QueryRow(ctx,
			"SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range postgresMigrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// CreateUser implements UserStore.
func (s *PostgresStore) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO users (username, password_hash) VALUES ($1, $2)",
		user.Username, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("creating user %s: %w", user.Username, ErrUserExists)
		}
		return fmt.Errorf("creating user %s: %w", user.Username, err)
	}
	return nil
}

// GetUserByUsername implements UserStore.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx,
		"SELECT username, password_hash FROM users WHERE username = $1", username).
		Scan(&user.Username, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("getting user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return &user, nil
}

// ListTodos implements TodoStore.
func (s *PostgresStore) ListTodos(ctx context.Context, owner string) ([]models.Todo, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, title, completed, owner FROM todos WHERE owner = $1 ORDER BY id", owner)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.Owner); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	return todos, nil
}

// CreateTodo implements TodoStore.
func (s *PostgresStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	err := s.pool.QueryRow(ctx,
		"INSERT INTO todos (title, completed, owner) VALUES ($1, $2, $3) RETURNING id",
		todo.Title, todo.Completed, todo.Owner).Scan(&todo.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("creating todo: owner %s: %w", todo.Owner, ErrNotFound)
		}
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// GetTodo implements TodoStore.
func (s *PostgresStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var todo models.Todo
	err := s.pool.QueryRow(ctx,
		"SELECT id, title, completed, owner FROM todos WHERE id = $1", id).
		Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.Owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("getting todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return &todo, nil
}

// UpdateTodo implements TodoStore.
func (s *PostgresStore) UpdateTodo(ctx context.Context, todo models.Todo) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE todos SET title = $1, completed = $2 WHERE id = $3 AND owner = $4",
		todo.Title, todo.Completed, todo.ID, todo.Owner)
	if err != nil {
		return fmt.Errorf("updating todo %d: %w", todo.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating todo %d: %w", todo.ID, ErrNotFound)
	}
	return nil
}

// DeleteTodo implements TodoStore.
func (s *PostgresStore) DeleteTodo(ctx context.Context, id int64, owner string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM todos WHERE id = $1 AND owner = $2", id, owner)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting todo %d: %w", id, ErrNotFound)
	}
	return nil
}
