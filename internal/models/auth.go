package models

// User represents a registered account
type User struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"` // Hidden from JSON responses
}
