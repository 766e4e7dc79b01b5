package routes

import (
	"github.com/edumatch/tutor_marketplace/handlers"
	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected(),
		middleware.RequireRoles(models.RoleStudent, models.RoleTutor, models.RoleAdmin))
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
