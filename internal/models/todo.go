package models

// Todo is a task item owned by exactly one user
type Todo struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Completed bool   `json:"completed" db:"completed"`
	Owner     string `json:"owner" db:"owner"`
}
