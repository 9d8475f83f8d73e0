package server

import (
	"context"

	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddFavorite handles POST /api/recipes/:id/favorite
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	return s.addRelation(c, s.relationService.AddFavorite)
}

// RemoveFavorite handles DELETE /api/recipes/:id/favorite
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	return s.removeRelation(c, s.relationService.RemoveFavorite)
}

// AddToCart handles POST /api/recipes/:id/shopping_cart
func (s *Server) AddToCart(c *fiber.Ctx) error {
	return s.addRelation(c, s.relationService.AddToCart)
}

// RemoveFromCart handles DELETE /api/recipes/:id/shopping_cart
func (s *Server) RemoveFromCart(c *fiber.Ctx) error {
	return s.removeRelation(c, s.relationService.RemoveFromCart)
}

func (s *Server) addRelation(c *fiber.Ctx, add func(context.Context, uint, uint) (*models.Recipe, error)) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := add(c.Context(), userID, recipeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(presentRecipeSummary(recipe))
}

func (s *Server) removeRelation(c *fiber.Ctx, remove func(context.Context, uint, uint) error) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := remove(c.Context(), userID, recipeID); err != nil {
		// Removing a row that was never added is a client error, not a 404.
		if models.IsCode(err, "NOT_FOUND") {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
