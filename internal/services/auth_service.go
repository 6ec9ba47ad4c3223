package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"elibrary/internal/models"
	"elibrary/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrIncorrectPassword is returned when the username exists but the supplied
// password does not match.
var ErrIncorrectPassword = errors.New("incorrect password")

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	User *models.User
	// Created is true when the account did not exist and was provisioned as
	// part of this login.
	Created bool
	Token   string
}

// AuthService handles credential verification with implicit account
// provisioning, plus profile updates.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// Login looks the username up and either verifies the password or, when the
// account does not exist yet, creates it and treats the attempt as a success.
// Exactly one of three outcomes happens: success, ErrIncorrectPassword, or
// account creation.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		if compareErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); compareErr != nil {
			return nil, ErrIncorrectPassword
		}
		token, tokenErr := s.generateToken(user)
		if tokenErr != nil {
			return nil, tokenErr
		}
		return &LoginResult{User: user, Token: token}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	// Unknown username: provision the account and log it in.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	newUser := &models.User{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create account for %s: %w", username, err)
	}

	token, err := s.generateToken(newUser)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: newUser, Created: true, Token: token}, nil
}

// UpdateProfile changes the username and/or password of an existing account.
// Empty values leave the stored field untouched. A duplicate new username
// surfaces as repositories.ErrDuplicate.
func (s *AuthService) UpdateProfile(ctx context.Context, currentUsername, newUsername, newPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, currentUsername)
	if err != nil {
		return nil, err
	}

	update := models.UserUpdate{}
	if newUsername != "" {
		update.Username = &newUsername
	}
	if newPassword != "" {
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		hashed := string(hashedPassword)
		update.Password = &hashed
	}

	return s.userRepo.Update(ctx, user.ID, update)
}

// generateToken issues an HS256 JWT for the given user.
func (s *AuthService) generateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
