package services

import (
	"context"
	"mime/multipart"

	"elibrary/internal/models"
	"elibrary/internal/repositories"
	"elibrary/internal/storage"
	"elibrary/pkg/rabbitmq"
)

// AuthorService handles business logic related to authors. It mirrors
// BookService with a single "photo" upload slot bound to photoUrl.
type AuthorService struct {
	repo     repositories.AuthorRepository
	blobs    *storage.BlobStore
	mqClient *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewAuthorService creates a new AuthorService.
func NewAuthorService(repo repositories.AuthorRepository, blobs *storage.BlobStore, mqClient *rabbitmq.Client) *AuthorService {
	return &AuthorService{
		repo:     repo,
		blobs:    blobs,
		mqClient: mqClient,
	}
}

// GetAllAuthors retrieves all authors.
func (s *AuthorService) GetAllAuthors(ctx context.Context) ([]models.Author, error) {
	return s.repo.GetAll(ctx)
}

// GetAuthorByID retrieves a single author by its ID.
func (s *AuthorService) GetAuthorByID(ctx context.Context, id string) (*models.Author, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateAuthor stores an uploaded photo if present and persists the author.
func (s *AuthorService) CreateAuthor(ctx context.Context, author *models.Author, photo *multipart.FileHeader) error {
	if photo != nil {
		ref, err := storeUpload(ctx, s.blobs, "photo", photo)
		if err != nil {
			return err
		}
		author.PhotoURL = &ref
	}

	if err := s.repo.Create(ctx, author); err != nil {
		return err
	}

	publishEvent(s.mqClient, "author.created", map[string]interface{}{
		"authorID": author.ID,
		"name":     author.Name,
	})
	return nil
}

// UpdateAuthor binds an uploaded photo onto the partial update and applies it.
// Without an upload the stored photoUrl survives unchanged.
func (s *AuthorService) UpdateAuthor(ctx context.Context, id string, update models.AuthorUpdate, photo *multipart.FileHeader) (*models.Author, error) {
	if photo != nil {
		ref, err := storeUpload(ctx, s.blobs, "photo", photo)
		if err != nil {
			return nil, err
		}
		update.PhotoURL = &ref
	}

	author, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	publishEvent(s.mqClient, "author.updated", map[string]interface{}{
		"authorID": author.ID,
	})
	return author, nil
}

// DeleteAuthor deletes an author by its ID. A referenced photo stays on disk.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(s.mqClient, "author.deleted", map[string]interface{}{
		"authorID": id,
	})
	return nil
}
