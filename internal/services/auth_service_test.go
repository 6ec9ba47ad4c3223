package services_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"

	"elibrary/internal/models"
	"elibrary/internal/repositories"
	"elibrary/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Login_ProvisionsUnknownUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByUsername", mock.Anything, "newuser").
		Return(nil, fmt.Errorf("user with username newuser: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

	result, err := authService.Login(context.Background(), "newuser", "password123")
	assert.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "newuser", result.User.Username)
	assert.NotEmpty(t, result.Token)

	// Credentials are stored hashed, never verbatim.
	assert.NotEqual(t, "password123", result.User.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.User.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_ExistingUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
	}

	// Matching password succeeds and is not treated as a fresh account.
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()
	result, err := authService.Login(context.Background(), "testuser", "password123")
	assert.NoError(t, err)
	assert.False(t, result.Created)
	assert.NotEmpty(t, result.Token)

	claims, err := authService.ValidateToken(result.Token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Mismatched password is the one rejecting outcome.
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()
	_, err = authService.Login(context.Background(), "testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrIncorrectPassword)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByUsername", mock.Anything, "testuser").
		Return(nil, fmt.Errorf("connection refused")).Once()

	_, err := authService.Login(context.Background(), "testuser", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrIncorrectPassword)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{ID: "user-123", Username: "olduser", Password: "hash"}

	mockRepo.On("GetByUsername", mock.Anything, "olduser").Return(user, nil).Once()
	mockRepo.On("Update", mock.Anything, "user-123", mock.MatchedBy(func(u models.UserUpdate) bool {
		// Only the username changes; the password pointer stays nil so the
		// stored hash is untouched.
		return u.Username != nil && *u.Username == "newuser" && u.Password == nil
	})).Return(&models.User{ID: "user-123", Username: "newuser", Password: "hash"}, nil).Once()

	updated, err := authService.UpdateProfile(context.Background(), "olduser", "newuser", "")
	assert.NoError(t, err)
	assert.Equal(t, "newuser", updated.Username)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile_HashesNewPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{ID: "user-123", Username: "testuser", Password: "oldhash"}

	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()
	mockRepo.On("Update", mock.Anything, "user-123", mock.MatchedBy(func(u models.UserUpdate) bool {
		if u.Password == nil || u.Username != nil {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte("freshpassword")) == nil
	})).Return(user, nil).Once()

	_, err := authService.UpdateProfile(context.Background(), "testuser", "", "freshpassword")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile_Errors(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Unknown account surfaces as ErrNotFound for the 404 mapping.
	mockRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("user with username ghost: %w", repositories.ErrNotFound)).Once()
	_, err := authService.UpdateProfile(context.Background(), "ghost", "x", "")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	// A taken username surfaces as ErrDuplicate for the 400 mapping.
	user := &models.User{ID: "user-123", Username: "testuser"}
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(user, nil).Once()
	mockRepo.On("Update", mock.Anything, "user-123", mock.AnythingOfType("models.UserUpdate")).
		Return(nil, fmt.Errorf("username already taken: %w", repositories.ErrDuplicate)).Once()
	_, err = authService.UpdateProfile(context.Background(), "testuser", "taken", "")
	assert.True(t, errors.Is(err, repositories.ErrDuplicate))
	mockRepo.AssertExpectations(t)
}

// TestAuthService_LoginMergeLifecycle drives the full login state machine
// through the in-memory repository so provisioning, re-login and the profile
// update all observe each other's writes.
func TestAuthService_LoginMergeLifecycle(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	authService := services.NewAuthService(repo, "test_jwt_secret")

	// First login provisions the account.
	first, err := authService.Login(context.Background(), "reader", "secret")
	assert.NoError(t, err)
	assert.True(t, first.Created)

	// Second login with the same credentials finds it.
	second, err := authService.Login(context.Background(), "reader", "secret")
	assert.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)

	// The wrong password is rejected rather than provisioning a duplicate.
	_, err = authService.Login(context.Background(), "reader", "notsecret")
	assert.ErrorIs(t, err, services.ErrIncorrectPassword)

	// Renaming onto an existing username fails the uniqueness constraint.
	_, err = authService.Login(context.Background(), "other", "pw")
	assert.NoError(t, err)
	_, err = authService.UpdateProfile(context.Background(), "other", "reader", "")
	assert.True(t, errors.Is(err, repositories.ErrDuplicate))

	// A rename plus password change takes effect for the next login.
	updated, err := authService.UpdateProfile(context.Background(), "reader", "bookworm", "rotated")
	assert.NoError(t, err)
	assert.Equal(t, "bookworm", updated.Username)

	third, err := authService.Login(context.Background(), "bookworm", "rotated")
	assert.NoError(t, err)
	assert.False(t, third.Created)
	assert.Equal(t, first.User.ID, third.User.ID)
}
