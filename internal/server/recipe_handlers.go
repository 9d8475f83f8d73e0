package server

import (
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// recipeRequest is the submitted body for recipe create and update.
type recipeRequest struct {
	Name        string                     `json:"name"`
	Text        string                     `json:"text"`
	Image       string                     `json:"image"`
	CookingTime int                        `json:"cooking_time"`
	Tags        []uint                     `json:"tags"`
	Ingredients []service.IngredientAmount `json:"ingredients"`
}

func (r recipeRequest) toInput() service.RecipeInput {
	return service.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		Image:       r.Image,
		CookingTime: r.CookingTime,
		TagIDs:      r.Tags,
		Ingredients: r.Ingredients,
	}
}

// GetRecipes handles GET /api/recipes/ with tag, author, favorite and cart
// filters. The viewer is optional; anonymous listings carry all-false flags.
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	pagination := parsePagination(c, 6)
	viewerID, _ := s.optionalUserID(c)

	filters := repository.RecipeFilters{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}

	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		filters.TagSlugs = append(filters.TagSlugs, string(slug))
	}
	if author := c.QueryInt("author", 0); author > 0 {
		filters.AuthorID = uint(author)
	}
	if viewerID != 0 {
		if c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true" {
			filters.FavoritedBy = viewerID
		}
		if c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true" {
			filters.InCartOf = viewerID
		}
	}

	recipes, total, err := s.recipeService.ListRecipes(c.Context(), filters)
	if err != nil {
		return respondError(c, err)
	}

	results, err := s.presentRecipes(c.Context(), viewerID, recipes)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":   total,
		"results": results,
	})
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	recipe, err := s.recipeService.GetRecipe(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return s.respondSingleRecipe(c, viewerID, recipe, fiber.StatusOK)
}

// CreateRecipe handles POST /api/recipes/
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), userID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return s.respondSingleRecipe(c, userID, recipe, fiber.StatusCreated)
}

// UpdateRecipe handles PUT and PATCH /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.Context(), userID, id, req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return s.respondSingleRecipe(c, userID, recipe, fiber.StatusOK)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) respondSingleRecipe(c *fiber.Ctx, viewerID uint, recipe *models.Recipe, status int) error {
	results, err := s.presentRecipes(c.Context(), viewerID, []models.Recipe{*recipe})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(results[0])
}
