package repositories

import (
	"context"

	"elibrary/internal/models"
)

// AuthorRepository defines the interface for author data access.
type AuthorRepository interface {
	GetAll(ctx context.Context) ([]models.Author, error)
	GetByID(ctx context.Context, id string) (*models.Author, error)
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, id string, update models.AuthorUpdate) (*models.Author, error)
	Delete(ctx context.Context, id string) error
}
