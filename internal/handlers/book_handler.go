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

// BookHandler handles HTTP requests for the book catalog.
type BookHandler struct {
	service  *services.BookService
	validate *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service *services.BookService) *BookHandler {
	return &BookHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the book routes with the Fiber app.
func (h *BookHandler) RegisterRoutes(router fiber.Router) {
	bookRoutes := router.Group("/books")
	bookRoutes.Get("/", h.HandleGetBooks)
	bookRoutes.Get("/category/:categoryName", h.HandleGetBooksByCategory)
	bookRoutes.Post("/", h.HandleCreateBook)
	bookRoutes.Put("/:id", h.HandleUpdateBook)
	bookRoutes.Delete("/:id", h.HandleDeleteBook)
}

// HandleGetBooks retrieves all books.
func (h *BookHandler) HandleGetBooks(c *fiber.Ctx) error {
	books, err := h.service.GetAllBooks(c.UserContext())
	if err != nil {
		log.Printf("Error getting all books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(books)
}

// HandleGetBooksByCategory retrieves all books whose category matches exactly.
func (h *BookHandler) HandleGetBooksByCategory(c *fiber.Ctx) error {
	category := c.Params("categoryName")
	books, err := h.service.GetBooksByCategory(c.UserContext(), category)
	if err != nil {
		log.Printf("Error getting books in category %s: %v", category, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   books,
	})
}

// HandleCreateBook creates a book from a multipart form. The pdf and cover
// slots are optional; title, author and category are required.
func (h *BookHandler) HandleCreateBook(c *fiber.Ctx) error {
	book := models.Book{
		Title:       c.FormValue("title"),
		Author:      c.FormValue("author"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	if err := h.validate.Struct(book); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	pdf, _ := c.FormFile("pdf")
	cover, _ := c.FormFile("cover")

	if err := h.service.CreateBook(c.UserContext(), &book, pdf, cover); err != nil {
		log.Printf("Error creating book: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(book)
}

// HandleUpdateBook applies a partial update built from the multipart form.
// Fields and upload slots absent from the request leave the stored values,
// including pdfUrl and coverImage, untouched.
func (h *BookHandler) HandleUpdateBook(c *fiber.Ctx) error {
	bookID := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("Error parsing multipart form for book %s: %v", bookID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	update := models.BookUpdate{}
	if v, ok := formValue(form, "title"); ok {
		update.Title = &v
	}
	if v, ok := formValue(form, "author"); ok {
		update.Author = &v
	}
	if v, ok := formValue(form, "description"); ok {
		update.Description = &v
	}
	if v, ok := formValue(form, "category"); ok {
		update.Category = &v
	}

	book, err := h.service.UpdateBook(c.UserContext(), bookID, update, formFile(form, "pdf"), formFile(form, "cover"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		log.Printf("Error updating book %s: %v", bookID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating book",
		})
	}

	return c.JSON(book)
}

// HandleDeleteBook deletes a book by its ID. Blobs referenced by the record
// stay on disk.
func (h *BookHandler) HandleDeleteBook(c *fiber.Ctx) error {
	bookID := c.Params("id")
	if err := h.service.DeleteBook(c.UserContext(), bookID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		log.Printf("Error deleting book %s: %v", bookID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting book",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Book deleted",
	})
}
