package routes

import (
	"github.com/edumatch/tutor_marketplace/handlers"
	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
)

func CategoryRoutes(app *fiber.App, h *handlers.CategoryHandler) {
	api := app.Group("/api/v1")

	categories := api.Group("/categories")

	categories.Get("", h.GetAllCategories)
	categories.Get("/:categoryId", h.GetCategoryByID)

	admin := categories.Group("", middleware.Protected(), middleware.RequireRoles(models.RoleAdmin))
	admin.Post("", h.CreateCategory)
	admin.Put("/:categoryId", h.UpdateCategory)
	admin.Delete("/:categoryId", h.DeleteCategory)
}
