package dto

// TodoRequest is the payload for creating or fully replacing a todo.
// Completed is a pointer only so an omitted value can be told apart from a wrong type;
// a missing value means false on both create and update.
type TodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// TodoResponse represents a todo in API responses
type TodoResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Owner     string `json:"owner"`
}
