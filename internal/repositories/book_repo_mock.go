package repositories

import (
	"context"
	"fmt"
	"sync"

	"elibrary/internal/models"

	"github.com/google/uuid"
)

// MockBookRepository is an in-memory implementation of BookRepository.
type MockBookRepository struct {
	books map[string]models.Book
	mu    sync.RWMutex
}

// NewMockBookRepository creates a new instance of MockBookRepository.
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{
		books: make(map[string]models.Book),
	}
}

// GetAll returns all books.
func (r *MockBookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookList := make([]models.Book, 0, len(r.books))
	for _, b := range r.books {
		bookList = append(bookList, b)
	}
	return bookList, nil
}

// GetByCategory returns all books whose category matches exactly.
func (r *MockBookRepository) GetByCategory(ctx context.Context, category string) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookList := make([]models.Book, 0)
	for _, b := range r.books {
		if b.Category == category {
			bookList = append(bookList, b)
		}
	}
	return bookList, nil
}

// GetByID returns a book by its ID.
func (r *MockBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
	}
	return &book, nil
}

// Create adds a new book.
func (r *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	r.books[book.ID] = *book
	return nil
}

// Update merges only the provided fields into an existing book.
func (r *MockBookRepository) Update(ctx context.Context, id string, update models.BookUpdate) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
	}
	if update.Title != nil {
		book.Title = *update.Title
	}
	if update.Author != nil {
		book.Author = *update.Author
	}
	if update.Description != nil {
		book.Description = *update.Description
	}
	if update.Category != nil {
		book.Category = *update.Category
	}
	if update.PdfURL != nil {
		book.PdfURL = update.PdfURL
	}
	if update.CoverImage != nil {
		book.CoverImage = update.CoverImage
	}
	r.books[id] = book
	return &book, nil
}

// Delete removes a book by its ID.
func (r *MockBookRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.books[id]
	if !ok {
		return fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
	}
	delete(r.books, id)
	return nil
}
