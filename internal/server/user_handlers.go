package server

import (
	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users/
func (s *Server) GetUsers(c *fiber.Ctx) error {
	pagination := parsePagination(c, 10)
	viewerID, _ := s.optionalUserID(c)

	users, total, err := s.userRepo.List(c.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		return respondError(c, err)
	}

	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	subscribed, err := s.relationService.SubscribedAuthors(c.Context(), viewerID, ids)
	if err != nil {
		return respondError(c, err)
	}

	results := make([]UserResponse, len(users))
	for i := range users {
		results[i] = presentUser(&users[i], subscribed[users[i].ID])
	}

	return c.JSON(fiber.Map{
		"count":   total,
		"results": results,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	// Viewing your own profile never reads as subscribed.
	return c.JSON(presentUser(user, false))
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	isSubscribed, err := s.relationService.IsSubscribed(c.Context(), viewerID, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(presentUser(user, isSubscribed))
}

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	author, err := s.relationService.Subscribe(c.Context(), userID, authorID)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := s.presentSubscription(c, author, c.QueryInt("recipes_limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.relationService.Unsubscribe(c.Context(), userID, authorID); err != nil {
		// Removing an absent subscription is a client error, not a 404.
		if models.IsCode(err, "NOT_FOUND") {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSubscriptions handles GET /api/users/subscriptions
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pagination := parsePagination(c, 10)
	recipesLimit := c.QueryInt("recipes_limit", 0)

	authors, total, err := s.userRepo.ListSubscribedAuthors(c.Context(), userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return respondError(c, err)
	}

	results := make([]SubscriptionResponse, len(authors))
	for i := range authors {
		resp, err := s.presentSubscription(c, &authors[i], recipesLimit)
		if err != nil {
			return respondError(c, err)
		}
		results[i] = resp
	}

	return c.JSON(fiber.Map{
		"count":   total,
		"results": results,
	})
}

// presentSubscription shapes a followed author with their recipes. A
// positive recipesLimit caps the embedded recipe list; recipes_count always
// reflects the author's full catalog.
func (s *Server) presentSubscription(c *fiber.Ctx, author *models.User, recipesLimit int) (SubscriptionResponse, error) {
	recipes := author.Recipes
	count := len(recipes)
	if recipes == nil {
		list, total, err := s.recipeService.ListRecipes(c.Context(), repository.RecipeFilters{
			AuthorID: author.ID,
			Limit:    recipesLimit,
		})
		if err != nil {
			return SubscriptionResponse{}, err
		}
		recipes = list
		count = int(total)
	}

	if recipesLimit > 0 && recipesLimit < len(recipes) {
		recipes = recipes[:recipesLimit]
	}

	summaries := make([]RecipeSummary, len(recipes))
	for i := range recipes {
		summaries[i] = presentRecipeSummary(&recipes[i])
	}

	return SubscriptionResponse{
		UserResponse: presentUser(author, true),
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}
