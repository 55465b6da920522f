package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"TODOLIST_BACK-END/internal/models"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// foreign keys, and runs any pending schema migrations. ":memory:" gives a
// private database that lives as long as the store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection serialises writers and keeps :memory: databases
	// and per-connection pragmas alive.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Name implements Store.
func (s *SQLiteStore) Name() string { return "sqlite" }

// Ping implements Store.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range sqliteMigrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// CreateUser implements UserStore.
func (s *SQLiteStore) CreateUser(ctx context.Context, user models.User) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)
		ON CONFLICT(username) DO NOTHING`,
		user.Username, user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("creating user %s: %w", user.Username, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("creating user %s: %w", user.Username, err)
	}
	if rows == 0 {
		return fmt.Errorf("creating user %s: %w", user.Username, ErrUserExists)
	}
	return nil
}

// GetUserByUsername implements UserStore.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		"SELECT username, password_hash FROM users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return &user, nil
}

// ListTodos implements TodoStore.
func (s *SQLiteStore) ListTodos(ctx context.Context, owner string) ([]models.Todo, error) {
	todos := make([]models.Todo, 0)
	err := s.db.SelectContext(ctx, &todos,
		"SELECT id, title, completed, owner FROM todos WHERE owner = ? ORDER BY id", owner)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	return todos, nil
}

// CreateTodo implements TodoStore.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	var exists int
	err := s.db.GetContext(ctx, &exists,
		"SELECT COUNT(*) FROM users WHERE username = ?", todo.Owner)
	if err != nil {
		return fmt.Errorf("checking todo owner: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("creating todo: owner %s: %w", todo.Owner, ErrNotFound)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (title, completed, owner) VALUES (?, ?, ?)",
		todo.Title, todo.Completed, todo.Owner,
	)
	if err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading todo id: %w", err)
	}
	todo.ID = id
	return nil
}

// GetTodo implements TodoStore.
func (s *SQLiteStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.GetContext(ctx, &todo,
		"SELECT id, title, completed, owner FROM todos WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return &todo, nil
}

// UpdateTodo implements TodoStore.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo models.Todo) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET title = ?, completed = ? WHERE id = ? AND owner = ?",
		todo.Title, todo.Completed, todo.ID, todo.Owner,
	)
	if err != nil {
		return fmt.Errorf("updating todo %d: %w", todo.ID, err)
	}
	return requireOneRow(result, "updating", todo.ID)
}

// DeleteTodo implements TodoStore.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id int64, owner string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM todos WHERE id = ? AND owner = ?", id, owner)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return requireOneRow(result, "deleting", id)
}

func requireOneRow(result sql.Result, op string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s todo %d: %w", op, id, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s todo %d: %w", op, id, ErrNotFound)
	}
	return nil
}
