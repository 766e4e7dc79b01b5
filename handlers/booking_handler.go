package handlers

import (
	"fmt"
	"time"

	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/notifications"
	"github.com/edumatch/tutor_marketplace/services"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/edumatch/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type CreateBookingRequest struct {
	TutorID string `json:"tutor_id" validate:"required,uuid"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	p := middleware.Principal(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	date, _ := time.Parse(time.RFC3339, req.Date)

	booking, err := h.svc.Create(p.ID, tutorID, date)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	go notifications.SendEmail(
		booking.Student.FullName, booking.Student.Email,
		"Your Booking is Confirmed!",
		fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your session on %s has been booked.</p>", booking.Date.Format("2 Jan 2006 15:04")),
	)
	go notifications.SendEmail(
		booking.Tutor.User.FullName, booking.Tutor.User.Email,
		"You Have a New Booking!",
		"<h1>New Booking</h1><p>A student has booked a session with you.</p>",
	)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	spec := store.BuildQuerySpec(c.Queries(), store.BookingSortFields)

	result, err := h.svc.ListForStudent(p.ID, spec)
	if err != nil {
		return utils.FetchErrorResponse(c, "bookings", err)
	}
	return c.JSON(result)
}

func (h *BookingHandler) GetTutorSessions(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	spec := store.BuildQuerySpec(c.Queries(), store.BookingSortFields)

	result, err := h.svc.ListForTutor(p.ID, spec)
	if err != nil {
		return utils.FetchErrorResponse(c, "sessions", err)
	}
	return c.JSON(result)
}

func (h *BookingHandler) GetAllBookings(c *fiber.Ctx) error {
	spec := store.BuildQuerySpec(c.Queries(), store.BookingSortFields)

	result, err := h.svc.ListAll(spec)
	if err != nil {
		return utils.FetchErrorResponse(c, "bookings", err)
	}
	return c.JSON(result)
}

func (h *BookingHandler) GetBookingByID(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.svc.GetByID(bookingID, p)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.svc.Cancel(bookingID, p.ID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) CompleteBooking(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.svc.Complete(bookingID, p.ID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	go notifications.SendEmail(
		booking.Student.FullName, booking.Student.Email,
		"Your Session is Complete",
		"<h1>Session Completed</h1><p>Your tutor has marked the session as complete. You can now leave a review.</p>",
	)

	return c.JSON(booking)
}
