package server

import (
	"errors"

	"blogly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps service-layer errors onto HTTP status codes.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case models.IsValidation(err):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.IsNotFound(err):
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
}
