package repositories

import (
	"context"
	"fmt"
	"sync"

	"elibrary/internal/models"

	"github.com/google/uuid"
)

// MockAuthorRepository is an in-memory implementation of AuthorRepository.
type MockAuthorRepository struct {
	authors map[string]models.Author
	mu      sync.RWMutex
}

// NewMockAuthorRepository creates a new instance of MockAuthorRepository.
func NewMockAuthorRepository() *MockAuthorRepository {
	return &MockAuthorRepository{
		authors: make(map[string]models.Author),
	}
}

// GetAll returns all authors.
func (r *MockAuthorRepository) GetAll(ctx context.Context) ([]models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	authorList := make([]models.Author, 0, len(r.authors))
	for _, a := range r.authors {
		authorList = append(authorList, a)
	}
	return authorList, nil
}

// GetByID returns an author by its ID.
func (r *MockAuthorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	author, ok := r.authors[id]
	if !ok {
		return nil, fmt.Errorf("author with ID %s: %w", id, ErrNotFound)
	}
	return &author, nil
}

// Create adds a new author.
func (r *MockAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if author.ID == "" {
		author.ID = uuid.New().String()
	}
	r.authors[author.ID] = *author
	return nil
}

// Update merges only the provided fields into an existing author.
func (r *MockAuthorRepository) Update(ctx context.Context, id string, update models.AuthorUpdate) (*models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	author, ok := r.authors[id]
	if !ok {
		return nil, fmt.Errorf("author with ID %s: %w", id, ErrNotFound)
	}
	if update.Name != nil {
		author.Name = *update.Name
	}
	if update.Biography != nil {
		author.Biography = *update.Biography
	}
	if update.PhotoURL != nil {
		author.PhotoURL = update.PhotoURL
	}
	r.authors[id] = author
	return &author, nil
}

// Delete removes an author by its ID.
func (r *MockAuthorRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.authors[id]
	if !ok {
		return fmt.Errorf("author with ID %s: %w", id, ErrNotFound)
	}
	delete(r.authors, id)
	return nil
}
