package repositories_test

import (
	"context"
	"errors"
	"testing"

	"elibrary/internal/models"
	"elibrary/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookRepo(t *testing.T) *repositories.GORMBookRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:bookrepo?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Book{}))

	return repositories.NewGORMBookRepository(db)
}

func strPtr(s string) *string { return &s }

func TestGORMBookRepository_CreateAssignsID(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	book := &models.Book{Title: "Dune", Author: "Frank Herbert", Category: "SciFi"}
	err := repo.Create(ctx, book)
	assert.NoError(t, err)
	assert.NotEmpty(t, book.ID)

	fetched, err := repo.GetByID(ctx, book.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Dune", fetched.Title)
	assert.Nil(t, fetched.PdfURL)
	assert.Nil(t, fetched.CoverImage)
}

func TestGORMBookRepository_UpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	book := &models.Book{
		Title:    "Original",
		Author:   "Someone",
		Category: "Fiction",
		PdfURL:   strPtr("uploads/111-orig.pdf"),
	}
	assert.NoError(t, repo.Create(ctx, book))

	// Updating only the title must leave the stored reference alone.
	updated, err := repo.Update(ctx, book.ID, models.BookUpdate{Title: strPtr("Renamed")})
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Someone", updated.Author)
	assert.NotNil(t, updated.PdfURL)
	assert.Equal(t, "uploads/111-orig.pdf", *updated.PdfURL)

	// An empty update is a no-op that still verifies existence.
	same, err := repo.Update(ctx, book.ID, models.BookUpdate{})
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", same.Title)

	// A provided reference does replace the stored one.
	replaced, err := repo.Update(ctx, book.ID, models.BookUpdate{PdfURL: strPtr("uploads/222-new.pdf")})
	assert.NoError(t, err)
	assert.Equal(t, "uploads/222-new.pdf", *replaced.PdfURL)
}

func TestGORMBookRepository_UpdateUnknownID(t *testing.T) {
	repo := setupBookRepo(t)

	_, err := repo.Update(context.Background(), "no-such-id", models.BookUpdate{Title: strPtr("x")})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestGORMBookRepository_GetByCategory(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &models.Book{Title: "A", Author: "X", Category: "History"}))
	assert.NoError(t, repo.Create(ctx, &models.Book{Title: "B", Author: "Y", Category: "History"}))
	assert.NoError(t, repo.Create(ctx, &models.Book{Title: "C", Author: "Z", Category: "Poetry"}))

	books, err := repo.GetByCategory(ctx, "History")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(books), 2)
	for _, b := range books {
		assert.Equal(t, "History", b.Category)
	}

	// Exact match only, no substring semantics.
	none, err := repo.GetByCategory(ctx, "Hist")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestGORMBookRepository_Delete(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	book := &models.Book{Title: "Doomed", Author: "X", Category: "C"}
	assert.NoError(t, repo.Create(ctx, book))

	assert.NoError(t, repo.Delete(ctx, book.ID))

	_, err := repo.GetByID(ctx, book.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	// Deleting again reports not found instead of succeeding silently.
	err = repo.Delete(ctx, book.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
