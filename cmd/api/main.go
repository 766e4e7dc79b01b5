package main

import (
	"log"
	"time"

	config "github.com/edumatch/tutor_marketplace/configs"
	"github.com/edumatch/tutor_marketplace/database"
	"github.com/edumatch/tutor_marketplace/handlers"
	"github.com/edumatch/tutor_marketplace/notifications"
	"github.com/edumatch/tutor_marketplace/routes"
	"github.com/edumatch/tutor_marketplace/services"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	userStore := store.NewUserStore(database.DB)
	categoryStore := store.NewCategoryStore(database.DB)
	tutorStore := store.NewTutorStore(database.DB)
	bookingStore := store.NewBookingStore(database.DB)
	reviewStore := store.NewReviewStore(database.DB)

	tutorService := services.NewTutorService(tutorStore, categoryStore)
	categoryService := services.NewCategoryService(categoryStore)
	bookingService := services.NewBookingService(bookingStore, tutorStore)
	reviewService := services.NewReviewService(reviewStore, bookingStore, tutorStore)

	authHandler := handlers.NewAuthHandler(userStore)
	tutorHandler := handlers.NewTutorHandler(tutorService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	app := fiber.New(fiber.Config{
		AppName:       "Tutor Marketplace",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.AuthRoutes(app, authHandler)
	routes.TutorRoutes(app, tutorHandler, bookingHandler)
	routes.CategoryRoutes(app, categoryHandler)
	routes.BookingRoutes(app, bookingHandler)
	routes.ReviewRoutes(app, reviewHandler)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
