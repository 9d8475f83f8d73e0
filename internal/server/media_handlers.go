package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetRecipeImage handles GET /media/recipes/:key, serving stored image bytes
// with their original content type.
func (s *Server) GetRecipeImage(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image key"))
	}

	image, err := s.imageRepo.GetByKey(c.Context(), key)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, image.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(image.Data)
}
