package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	// Create stores a new user. It returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// Role is the access level of a user.
type Role string

const (
	// RoleUser can submit and browse projects.
	RoleUser Role = "user"
	// RoleAdmin can additionally list, moderate and delete any project.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         Role
	CreatedAt    time.Time
}

// PublicUser is the user view returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public strips authentication material from the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// RegisterParams contains registration input.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Session is the result of a successful registration or login.
type Session struct {
	User  PublicUser
	Token string
}

// PasswordHasher turns secrets into one-way hashes and verifies them.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	Compare(hash []byte, password string) error
}
