package model

import "time"

// User represents a user in the database.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// MeResponse is returned by GET /api/auth/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// Public returns the client-safe view of u.
func (u *User) Public() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}
