package repositories

import (
	"context"
	"errors"
	"fmt"

	"elibrary/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAuthorRepository is a GORM implementation of AuthorRepository.
type GORMAuthorRepository struct {
	db *gorm.DB
}

// NewGORMAuthorRepository creates a new instance of GORMAuthorRepository.
func NewGORMAuthorRepository(db *gorm.DB) *GORMAuthorRepository {
	return &GORMAuthorRepository{
		db: db,
	}
}

// GetAll retrieves all authors from the database.
func (r *GORMAuthorRepository) GetAll(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.WithContext(ctx).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to get all authors: %w", err)
	}
	return authors, nil
}

// GetByID retrieves a single author by its ID from the database.
func (r *GORMAuthorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("author with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get author by ID %s: %w", id, err)
	}
	return &author, nil
}

// Create creates a new author in the database.
func (r *GORMAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	if author.ID == "" {
		author.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

// Update merges only the provided fields into an existing author and returns
// the updated record.
func (r *GORMAuthorRepository) Update(ctx context.Context, id string, update models.AuthorUpdate) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("author with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get author by ID %s: %w", id, err)
	}

	fields := update.Fields()
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&author).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update author %s: %w", id, err)
		}
	}

	// Re-read so the caller sees exactly what was persisted.
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload author %s: %w", id, err)
	}
	return &author, nil
}

// Delete deletes an author by its ID from the database.
func (r *GORMAuthorRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Author{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete author %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("author with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
