package handlers

import (
	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/services"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/edumatch/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	svc *services.ReviewService
}

func NewReviewHandler(svc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type CreateReviewRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty"`
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	p := middleware.Principal(c)

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bookingID, _ := uuid.Parse(req.BookingID)

	review, err := h.svc.Create(p.ID, bookingID, req.Rating, req.Comment)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) GetReviewsByTutor(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}
	spec := store.BuildQuerySpec(c.Queries(), store.ReviewSortFields)

	result, err := h.svc.GetByTutor(tutorID, spec)
	if err != nil {
		return utils.FetchErrorResponse(c, "reviews", err)
	}
	return c.JSON(result)
}

func (h *ReviewHandler) GetMyReviews(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	spec := store.BuildQuerySpec(c.Queries(), store.ReviewSortFields)

	result, err := h.svc.GetMine(p.ID, spec)
	if err != nil {
		return utils.FetchErrorResponse(c, "reviews", err)
	}
	return c.JSON(result)
}

func (h *ReviewHandler) GetAllReviews(c *fiber.Ctx) error {
	spec := store.BuildQuerySpec(c.Queries(), store.ReviewSortFields)

	result, err := h.svc.GetAll(spec)
	if err != nil {
		return utils.FetchErrorResponse(c, "reviews", err)
	}
	return c.JSON(result)
}

func (h *ReviewHandler) GetReviewByID(c *fiber.Ctx) error {
	p := middleware.Principal(c)
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	review, err := h.svc.GetByID(reviewID, p)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.JSON(review)
}
