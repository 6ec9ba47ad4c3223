package handlers

import (
	"errors"
	"fmt"
	"log"

	"elibrary/internal/repositories"
	"elibrary/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for login and profile management.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
	router.Post("/forgot-password", h.HandleForgotPassword)
	router.Put("/update-user", h.HandleUpdateUser)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles the merged login/registration endpoint: a known
// username is verified against its password, an unknown one gets an account
// created and logged in.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Validate the login request
	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	result, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrIncorrectPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Incorrect Password",
			})
		}
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	message := "Welcome back!"
	if result.Created {
		message = "Account Created & Logged In"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"user":    result.User,
		"token":   result.Token,
	})
}

// HandleForgotPassword always answers with a generic message; no account
// lookup is performed, so the response leaks nothing.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "If this account exists, a reset link has been sent.",
	})
}

// UpdateUserRequest represents the request body for a profile update.
type UpdateUserRequest struct {
	CurrentUsername string `json:"currentUsername" validate:"required"`
	NewUsername     string `json:"newUsername"`
	NewPassword     string `json:"newPassword"`
}

// HandleUpdateUser changes the username and/or password of an account.
func (h *AuthHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), req.CurrentUsername, req.NewUsername, req.NewPassword)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Username already taken",
			})
		}
		log.Printf("Error updating profile for %s: %v", req.CurrentUsername, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating profile",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Profile Updated Successfully",
		"user":    user,
	})
}
