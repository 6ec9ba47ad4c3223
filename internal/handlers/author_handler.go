package handlers

import (
	"errors"
	"log"

	"elibrary/internal/models"
	"elibrary/internal/repositories"
	"elibrary/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthorHandler handles HTTP requests for author profiles.
type AuthorHandler struct {
	service  *services.AuthorService
	validate *validator.Validate
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(service *services.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the author routes with the Fiber app.
func (h *AuthorHandler) RegisterRoutes(router fiber.Router) {
	authorRoutes := router.Group("/authors")
	authorRoutes.Get("/", h.HandleGetAuthors)
	authorRoutes.Get("/:id", h.HandleGetAuthorByID)
	authorRoutes.Post("/", h.HandleCreateAuthor)
	authorRoutes.Put("/:id", h.HandleUpdateAuthor)
	authorRoutes.Delete("/:id", h.HandleDeleteAuthor)
}

// HandleGetAuthors retrieves all authors.
func (h *AuthorHandler) HandleGetAuthors(c *fiber.Ctx) error {
	authors, err := h.service.GetAllAuthors(c.UserContext())
	if err != nil {
		log.Printf("Error getting all authors: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching authors",
		})
	}
	return c.JSON(authors)
}

// HandleGetAuthorByID retrieves a single author by its ID.
func (h *AuthorHandler) HandleGetAuthorByID(c *fiber.Ctx) error {
	authorID := c.Params("id")
	author, err := h.service.GetAuthorByID(c.UserContext(), authorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Author not found",
			})
		}
		log.Printf("Error getting author %s: %v", authorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching author",
		})
	}
	return c.JSON(author)
}

// HandleCreateAuthor creates an author from a multipart form. The photo slot
// is optional; name is required.
func (h *AuthorHandler) HandleCreateAuthor(c *fiber.Ctx) error {
	author := models.Author{
		Name:      c.FormValue("name"),
		Biography: c.FormValue("biography"),
	}

	if err := h.validate.Struct(author); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	photo, _ := c.FormFile("photo")

	if err := h.service.CreateAuthor(c.UserContext(), &author, photo); err != nil {
		log.Printf("Error adding author: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding author",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(author)
}

// HandleUpdateAuthor applies a partial update built from the multipart form.
// Without a photo upload the stored photoUrl is left untouched.
func (h *AuthorHandler) HandleUpdateAuthor(c *fiber.Ctx) error {
	authorID := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("Error parsing multipart form for author %s: %v", authorID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	update := models.AuthorUpdate{}
	if v, ok := formValue(form, "name"); ok {
		update.Name = &v
	}
	if v, ok := formValue(form, "biography"); ok {
		update.Biography = &v
	}

	author, err := h.service.UpdateAuthor(c.UserContext(), authorID, update, formFile(form, "photo"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Author not found",
			})
		}
		log.Printf("Error updating author %s: %v", authorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating author",
		})
	}

	return c.JSON(author)
}

// HandleDeleteAuthor deletes an author by its ID.
func (h *AuthorHandler) HandleDeleteAuthor(c *fiber.Ctx) error {
	authorID := c.Params("id")
	if err := h.service.DeleteAuthor(c.UserContext(), authorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Author not found",
			})
		}
		log.Printf("Error deleting author %s: %v", authorID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting author",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Author deleted",
	})
}
