package repositories

import (
	"context"
	"fmt"
	"sync"

	"elibrary/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, enforcing username uniqueness like the database does.
func (r *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %s: %w", user.Username, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by their username.
func (r *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// Update merges only the provided fields into an existing user.
func (r *MockUserRepository) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	if update.Username != nil {
		for otherID, u := range r.users {
			if otherID != id && u.Username == *update.Username {
				return nil, fmt.Errorf("username already taken: %w", ErrDuplicate)
			}
		}
		user.Username = *update.Username
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	r.users[id] = user
	return &user, nil
}
