package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// UserResponse is the public representation of a user; the password hash is never included
type UserResponse struct {
	Username string `json:"username"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names one offending field of a rejected request
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
