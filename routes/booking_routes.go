package routes

import (
	"github.com/edumatch/tutor_marketplace/handlers"
	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())

	booking.Post("", middleware.RequireRoles(models.RoleStudent), h.CreateBooking)
	booking.Get("/me", middleware.RequireRoles(models.RoleStudent), h.GetMyBookings)
	booking.Patch("/:bookingId/cancel", middleware.RequireRoles(models.RoleStudent), h.CancelBooking)

	booking.Patch("/:bookingId/complete", middleware.RequireRoles(models.RoleTutor), h.CompleteBooking)

	booking.Get("", middleware.RequireRoles(models.RoleAdmin), h.GetAllBookings)

	booking.Get("/:bookingId",
		middleware.RequireRoles(models.RoleStudent, models.RoleTutor, models.RoleAdmin),
		h.GetBookingByID)
}
