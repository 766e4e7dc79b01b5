package middleware

import (
	"slices"

	config "github.com/edumatch/tutor_marketplace/configs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// Principal extracts the authenticated caller from the verified JWT claims.
func Principal(c *fiber.Ctx) models.Principal {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return models.Principal{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Principal{}
	}

	var p models.Principal
	if idStr, ok := claims["user_id"].(string); ok {
		p.ID, _ = uuid.Parse(idStr)
	}
	p.Role, _ = claims["role"].(string)
	p.Status, _ = claims["status"].(string)
	return p
}

// RequireRoles is the declarative role gate: the caller's role must be a
// member of the set. Principals whose account is not active are treated as
// unauthenticated.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := Principal(c)
		if !p.IsActive() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Account is not active",
			})
		}
		if !slices.Contains(roles, p.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: insufficient role",
			})
		}
		return c.Next()
	}
}
