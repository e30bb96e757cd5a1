// Package memory keeps users and projects in process memory.
// Data lives as long as the process; every method is safe for concurrent use.
package memory

import (
	"context"
	"sync"

	"github.com/dtroode/projecthub-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	mu      sync.RWMutex
	users   []model.User
	byEmail map[string]int
	byID    map[string]int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]int),
		byID:    make(map[string]int),
	}
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return model.User{}, model.ErrAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return model.User{}, model.ErrAlreadyExists
	}

	user.PasswordHash = append([]byte(nil), user.PasswordHash...)
	r.users = append(r.users, user)
	r.byEmail[user.Email] = len(r.users) - 1
	r.byID[user.ID] = len(r.users) - 1

	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return r.users[idx], nil
}

// Count returns the number of stored users.
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
