package routes

import (
	"github.com/edumatch/tutor_marketplace/handlers"
	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
)

func TutorRoutes(app *fiber.App, tutors *handlers.TutorHandler, bookings *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	tutor := api.Group("/tutors")

	protected := middleware.Protected()
	tutorOnly := middleware.RequireRoles(models.RoleTutor)

	// Self-service routes come before the wildcard so "me" is never
	// treated as a tutor id.
	tutor.Get("/me", protected, tutorOnly, tutors.GetMyProfile)
	tutor.Get("/me/sessions", protected, tutorOnly, bookings.GetTutorSessions)
	tutor.Post("/profile", protected, tutorOnly, tutors.CreateProfile)
	tutor.Put("/profile", protected, tutorOnly, tutors.UpdateProfile)
	tutor.Put("/availability", protected, tutorOnly, tutors.UpdateAvailability)

	// Public directory
	tutor.Get("", tutors.GetAllTutors)
	tutor.Get("/:tutorId", tutors.GetTutorByID)
}
