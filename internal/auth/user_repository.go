package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
)

// UserRepository stores registered users.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// InMemoryUserRepository keeps users in a map keyed by lower-cased email.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewInMemoryUserRepository creates an empty user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// Create stores user, or returns ErrUserExists when the email is taken.
func (r *InMemoryUserRepository) Create(ctx context.Context, user models.User) error {
	key := emailKey(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[key]; exists {
		return ErrUserExists
	}
	r.users[key] = user
	return nil
}

// GetByEmail returns the user registered with email, or ErrUserNotFound.
func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	user, exists := r.users[emailKey(email)]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
