package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"elibrary/internal/config"
	"elibrary/internal/handlers"
	"elibrary/internal/middleware"
	"elibrary/internal/models"
	"elibrary/internal/repositories"
	"elibrary/internal/services"
	"elibrary/internal/storage"
	"elibrary/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.New()

	// --- Database Connection ---
	// Connect synchronously and fail fast: a backend that cannot reach its
	// store has nothing useful to serve.
	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.Author{}, &models.BookInfo{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Blob Store ---
	// The upload directory is ensured once here; a missing directory is a
	// startup failure, never a per-request one.
	blobs, err := storage.NewBlobStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// --- Initialize RabbitMQ Client ---
	// Catalog events are best effort: without a broker the API still works,
	// so a failed connection is logged and the client left nil.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close() // Ensure the connection is closed on exit
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	bookRepo := repositories.NewGORMBookRepository(db)
	authorRepo := repositories.NewGORMAuthorRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	bookService := services.NewBookService(bookRepo, blobs, mqClient)
	authorService := services.NewAuthorService(authorRepo, blobs, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	bookHandler := handlers.NewBookHandler(bookService)
	authorHandler := handlers.NewAuthorHandler(authorService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(middleware.RequestTimeout(cfg.Global.RequestTimeout))

	// --- Static Uploads ---
	// Stored blob references resolve under this mount.
	app.Static("/uploads", cfg.Uploads.Dir)

	// --- API Routes ---
	authHandler.RegisterRoutes(app)
	bookHandler.RegisterRoutes(app)
	authorHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// A simple audit consumer that logs every catalog mutation.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Catalog Event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.HTTP.Port)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
