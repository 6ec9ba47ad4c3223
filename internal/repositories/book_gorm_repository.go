package repositories

import (
	"context"
	"errors"
	"fmt"

	"elibrary/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// GetAll retrieves all books from the database.
func (r *GORMBookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get all books: %w", err)
	}
	return books, nil
}

// GetByCategory retrieves all books whose category matches exactly.
func (r *GORMBookRepository) GetByCategory(ctx context.Context, category string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Find(&books, "category = ?", category).Error; err != nil {
		return nil, fmt.Errorf("failed to get books in category %s: %w", category, err)
	}
	return books, nil
}

// GetByID retrieves a single book by its ID from the database.
func (r *GORMBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id, err)
	}
	return &book, nil
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(ctx context.Context, book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update merges only the provided fields into an existing book and returns the
// updated record. Reference fields absent from the update keep their stored
// values.
func (r *GORMBookRepository) Update(ctx context.Context, id string, update models.BookUpdate) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id, err)
	}

	fields := update.Fields()
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&book).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update book %s: %w", id, err)
		}
	}

	// Re-read so the caller sees exactly what was persisted.
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload book %s: %w", id, err)
	}
	return &book, nil
}

// Delete deletes a book by its ID from the database. The referenced blobs are
// deliberately left in place.
func (r *GORMBookRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
