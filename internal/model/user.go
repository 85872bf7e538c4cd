package model

// User is a registered account. Password holds the hash and is never serialized.
type User struct {
	ID       string `json:"_id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	Avatar   string `json:"avatar" db:"avatar"`
}

// UserSummary is the subset of a user joined into profile responses.
type UserSummary struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// CreateUserRequest provisions a user outside the HTTP API.
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Avatar   string
}

// LoginRequest represents a login request. Password is a pointer so a missing
// field can be told apart from an empty one.
type LoginRequest struct {
	Email    string  `json:"email" validate:"email"`
	Password *string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
