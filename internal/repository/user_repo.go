// internal/repository/user_repo.go
package repository

import (
	"context"

	"aquaflow-kiosk/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser stores a new user and assigns the next sequential ID.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateUser persists a mutated user record.
	UpdateUser(ctx context.Context, user *domain.User) error
	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int, error)
}
