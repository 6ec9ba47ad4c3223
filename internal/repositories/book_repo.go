package repositories

import (
	"context"

	"elibrary/internal/models"
)

// BookRepository defines the interface for book data access.
type BookRepository interface {
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByCategory(ctx context.Context, category string) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, id string, update models.BookUpdate) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}
