// internal/repository/memory/user_store.go

// Package memory provides bounded in-memory implementations of the
// repository interfaces. The stores perform no internal locking; the
// service layer serializes access.
package memory

import (
	"context"

	"aquaflow-kiosk/internal/domain"
	"aquaflow-kiosk/internal/repository"
	"aquaflow-kiosk/internal/util"
)

// UserStore implements repository.UserRepository in memory.
// IDs are assigned sequentially from 1 and users are never deleted, so the
// record for user N lives at index N-1.
type UserStore struct {
	maxUsers int
	users    []domain.User
}

// NewUserStore creates a UserStore that accepts at most maxUsers users.
func NewUserStore(maxUsers int) *UserStore {
	return &UserStore{
		maxUsers: maxUsers,
		users:    make([]domain.User, 0, maxUsers),
	}
}

var _ repository.UserRepository = (*UserStore)(nil)

// CreateUser stores a new user and assigns the next sequential ID.
func (s *UserStore) CreateUser(_ context.Context, user *domain.User) error {
	if len(s.users) >= s.maxUsers {
		return util.ErrCapacityExceeded
	}
	user.ID = int64(len(s.users) + 1)
	s.users = append(s.users, *user)
	return nil
}

// GetUserByID retrieves a copy of the user record, so callers can mutate it
// freely and persist the result with UpdateUser.
func (s *UserStore) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	if id < 1 || id > int64(len(s.users)) {
		return nil, util.ErrUserNotFound
	}
	u := s.users[id-1]
	return &u, nil
}

// UpdateUser persists a mutated user record.
func (s *UserStore) UpdateUser(_ context.Context, user *domain.User) error {
	if user.ID < 1 || user.ID > int64(len(s.users)) {
		return util.ErrUserNotFound
	}
	s.users[user.ID-1] = *user
	return nil
}

// CountUsers returns the number of registered users.
func (s *UserStore) CountUsers(_ context.Context) (int, error) {
	return len(s.users), nil
}
