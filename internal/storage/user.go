package storage

import (
	"context"
	"errors"
	"time"

	"github.com/linemk/storefront/internal/domain/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserStorage interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// CreateUser создаёт пользователя, ErrUserExists при занятом username.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

type userRepository struct {
	store *Storage
}

func NewUserRepository(store *Storage) UserStorage {
	return &userRepository{store: store}
}

// получение уже существующего пользователя
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == user.Username {
			return nil, ErrUserExists
		}
	}

	r.store.nextUserID++
	cp := *user
	cp.ID = r.store.nextUserID
	cp.CreatedAt = time.Now()
	r.store.users[cp.ID] = &cp

	result := cp
	return &result, nil
}
