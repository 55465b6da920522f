package store

import (
	"context"
	"fmt"
	"sync"

	"TODOLIST_BACK-END/internal/models"
)

// MemoryStore keeps everything in process memory. Used by tests and by
// DB_DRIVER=memory for throwaway local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	todos  map[int64]models.Todo
	order  []int64
	lastID int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]models.User),
		todos: make(map[int64]models.Todo),
	}
}

// Name implements Store.
func (s *MemoryStore) Name() string { return "memory" }

// Ping implements Store.
func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

// CreateUser implements UserStore.
func (s *MemoryStore) CreateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return fmt.Errorf("creating user %s: %w", user.Username, ErrUserExists)
	}
	s.users[user.Username] = user
	return nil
}

// GetUserByUsername implements UserStore.
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("getting user %s: %w", username, ErrNotFound)
	}
	return &user, nil
}

// ListTodos implements TodoStore.
func (s *MemoryStore) ListTodos(ctx context.Context, owner string) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]models.Todo, 0)
	for _, id := range s.order {
		if todo := s.todos[id]; todo.Owner == owner {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

// CreateTodo implements TodoStore.
func (s *MemoryStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[todo.Owner]; !ok {
		return fmt.Errorf("creating todo: owner %s: %w", todo.Owner, ErrNotFound)
	}

	s.lastID++
	todo.ID = s.lastID
	s.todos[todo.ID] = *todo
	s.order = append(s.order, todo.ID)
	return nil
}

// GetTodo implements TodoStore.
func (s *MemoryStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, ok := s.todos[id]
	if !ok {
		return nil, fmt.Errorf("getting todo %d: %w", id, ErrNotFound)
	}
	return &todo, nil
}

// UpdateTodo implements TodoStore.
func (s *MemoryStore) UpdateTodo(ctx context.Context, todo models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.todos[todo.ID]
	if !ok || current.Owner != todo.Owner {
		return fmt.Errorf("updating todo %d: %w", todo.ID, ErrNotFound)
	}
	current.Title = todo.Title
	current.Completed = todo.Completed
	s.todos[todo.ID] = current
	return nil
}

// DeleteTodo implements TodoStore.
func (s *MemoryStore) DeleteTodo(ctx context.Context, id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.todos[id]
	if !ok || current.Owner != owner {
		return fmt.Errorf("deleting todo %d: %w", id, ErrNotFound)
	}
	delete(s.todos, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
