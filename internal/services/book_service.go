package services

import (
	"context"
	"mime/multipart"

	"elibrary/internal/models"
	"elibrary/internal/repositories"
	"elibrary/internal/storage"
	"elibrary/pkg/rabbitmq"
)

// BookService handles business logic related to books, including binding
// multipart uploads to the pdfUrl and coverImage reference fields.
type BookService struct {
	repo     repositories.BookRepository
	blobs    *storage.BlobStore
	mqClient *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewBookService creates a new BookService.
func NewBookService(repo repositories.BookRepository, blobs *storage.BlobStore, mqClient *rabbitmq.Client) *BookService {
	return &BookService{
		repo:     repo,
		blobs:    blobs,
		mqClient: mqClient,
	}
}

// GetAllBooks retrieves all books.
func (s *BookService) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	return s.repo.GetAll(ctx)
}

// GetBooksByCategory retrieves all books in an exact-match category.
func (s *BookService) GetBooksByCategory(ctx context.Context, category string) ([]models.Book, error) {
	return s.repo.GetByCategory(ctx, category)
}

// CreateBook stores any uploaded files, binds their references onto the book
// and persists it. Both upload slots are optional at creation; the blob writes
// complete before the record is written, so a stored book never references an
// unfinished upload.
func (s *BookService) CreateBook(ctx context.Context, book *models.Book, pdf, cover *multipart.FileHeader) error {
	if pdf != nil {
		ref, err := storeUpload(ctx, s.blobs, "pdf", pdf)
		if err != nil {
			return err
		}
		book.PdfURL = &ref
	}
	if cover != nil {
		ref, err := storeUpload(ctx, s.blobs, "cover", cover)
		if err != nil {
			return err
		}
		book.CoverImage = &ref
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return err
	}

	publishEvent(s.mqClient, "book.created", map[string]interface{}{
		"bookID":   book.ID,
		"title":    book.Title,
		"category": book.Category,
	})
	return nil
}

// UpdateBook binds any uploaded files onto the partial update and applies it.
// A slot with no upload stays absent from the update, so the stored reference
// survives unchanged.
func (s *BookService) UpdateBook(ctx context.Context, id string, update models.BookUpdate, pdf, cover *multipart.FileHeader) (*models.Book, error) {
	if pdf != nil {
		ref, err := storeUpload(ctx, s.blobs, "pdf", pdf)
		if err != nil {
			return nil, err
		}
		update.PdfURL = &ref
	}
	if cover != nil {
		ref, err := storeUpload(ctx, s.blobs, "cover", cover)
		if err != nil {
			return nil, err
		}
		update.CoverImage = &ref
	}

	book, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	publishEvent(s.mqClient, "book.updated", map[string]interface{}{
		"bookID": book.ID,
	})
	return book, nil
}

// DeleteBook deletes a book by its ID. Referenced blobs stay on disk.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(s.mqClient, "book.deleted", map[string]interface{}{
		"bookID": id,
	})
	return nil
}
