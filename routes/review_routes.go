package routes

import (
	"github.com/edumatch/tutor_marketplace/handlers"
	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App, h *handlers.ReviewHandler) {
	api := app.Group("/api/v1")

	reviews := api.Group("/reviews")

	// Public: anyone can read a tutor's reviews.
	reviews.Get("/tutor/:tutorId", h.GetReviewsByTutor)

	reviews.Post("",
		middleware.Protected(), middleware.RequireRoles(models.RoleStudent),
		h.CreateReview)

	reviews.Get("/me",
		middleware.Protected(), middleware.RequireRoles(models.RoleTutor),
		h.GetMyReviews)

	reviews.Get("",
		middleware.Protected(), middleware.RequireRoles(models.RoleAdmin),
		h.GetAllReviews)

	reviews.Get("/:reviewId",
		middleware.Protected(),
		middleware.RequireRoles(models.RoleStudent, models.RoleTutor, models.RoleAdmin),
		h.GetReviewByID)
}
