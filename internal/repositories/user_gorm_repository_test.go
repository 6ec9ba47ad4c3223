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

func setupUserRepo(t *testing.T) *repositories.GORMUserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:userrepo?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))

	return repositories.NewGORMUserRepository(db)
}

func TestGORMUserRepository_CreateAndGet(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "hash"}
	assert.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	fetched, err := repo.GetByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestGORMUserRepository_DuplicateUsername(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &models.User{Username: "bob", Password: "h1"}))

	// The uniqueness violation must be distinguishable from a generic
	// persistence failure.
	err := repo.Create(ctx, &models.User{Username: "bob", Password: "h2"})
	assert.True(t, errors.Is(err, repositories.ErrDuplicate))
}

func TestGORMUserRepository_UpdateToTakenUsername(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	first := &models.User{Username: "carol", Password: "h"}
	second := &models.User{Username: "dave", Password: "h"}
	assert.NoError(t, repo.Create(ctx, first))
	assert.NoError(t, repo.Create(ctx, second))

	taken := "carol"
	_, err := repo.Update(ctx, second.ID, models.UserUpdate{Username: &taken})
	assert.True(t, errors.Is(err, repositories.ErrDuplicate))

	// The failed rename left the record as it was.
	unchanged, err := repo.GetByID(ctx, second.ID)
	assert.NoError(t, err)
	assert.Equal(t, "dave", unchanged.Username)
}

func TestGORMUserRepository_PartialUpdate(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	user := &models.User{Username: "erin", Password: "oldhash"}
	assert.NoError(t, repo.Create(ctx, user))

	newName := "erin2"
	updated, err := repo.Update(ctx, user.ID, models.UserUpdate{Username: &newName})
	assert.NoError(t, err)
	assert.Equal(t, "erin2", updated.Username)
	assert.Equal(t, "oldhash", updated.Password)

	_, err = repo.Update(ctx, "missing", models.UserUpdate{Username: &newName})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
