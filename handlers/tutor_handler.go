package handlers

import (
	"encoding/json"

	"github.com/edumatch/tutor_marketplace/middleware"
	"github.com/edumatch/tutor_marketplace/services"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/edumatch/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TutorHandler struct {
	svc *services.TutorService
}

func NewTutorHandler(svc *services.TutorService) *TutorHandler {
	return &TutorHandler{svc: svc}
}

func (h *TutorHandler) GetAllTutors(c *fiber.Ctx) error {
	spec := store.BuildQuerySpec(c.Queries(), store.TutorSortFields)

	result, err := h.svc.List(spec)
	if err != nil {
		return utils.FetchErrorResponse(c, "tutors", err)
	}
	return c.JSON(result)
}

func (h *TutorHandler) GetTutorByID(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	profile, err := h.svc.GetByID(tutorID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.JSON(profile)
}

func (h *TutorHandler) GetMyProfile(c *fiber.Ctx) error {
	p := middleware.Principal(c)

	profile, err := h.svc.GetMine(p.ID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.JSON(profile)
}

type CreateTutorProfileRequest struct {
	Bio          *string         `json:"bio,omitempty"`
	Price        float64         `json:"price" validate:"gte=0"`
	Experience   int             `json:"experience" validate:"gte=0"`
	Availability json.RawMessage `json:"availability,omitempty"`
	CategoryIDs  []string        `json:"category_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func (h *TutorHandler) CreateProfile(c *fiber.Ctx) error {
	p := middleware.Principal(c)

	var req CreateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.svc.CreateProfile(p.ID, services.CreateTutorProfileInput{
		Bio:          req.Bio,
		Price:        req.Price,
		Experience:   req.Experience,
		Availability: req.Availability,
		CategoryIDs:  parseUUIDs(req.CategoryIDs),
	})
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

type UpdateTutorProfileRequest struct {
	Bio         *string  `json:"bio,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Experience  *int     `json:"experience,omitempty" validate:"omitempty,gte=0"`
	CategoryIDs []string `json:"category_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func (h *TutorHandler) UpdateProfile(c *fiber.Ctx) error {
	p := middleware.Principal(c)

	var req UpdateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := services.UpdateTutorProfileInput{
		Bio:        req.Bio,
		Price:      req.Price,
		Experience: req.Experience,
	}
	if req.CategoryIDs != nil {
		input.CategoryIDs = parseUUIDs(req.CategoryIDs)
	}

	profile, err := h.svc.UpdateProfile(p.ID, input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.JSON(profile)
}

type UpdateAvailabilityRequest struct {
	Availability json.RawMessage `json:"availability" validate:"required"`
}

func (h *TutorHandler) UpdateAvailability(c *fiber.Ctx) error {
	p := middleware.Principal(c)

	var req UpdateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.svc.UpdateAvailability(p.ID, req.Availability)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return c.JSON(profile)
}

func parseUUIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
