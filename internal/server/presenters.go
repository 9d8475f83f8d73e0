package server

import (
	"context"

	"foodgram/internal/models"
)

// mediaPath is where stored recipe images are served from.
const mediaPath = "/media/recipes/"

// UserResponse is the API shape of a user, with the viewer-dependent
// is_subscribed flag resolved.
type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// IngredientInRecipe flattens an ingredient line for recipe payloads.
type IngredientInRecipe struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full API shape of a recipe.
type RecipeResponse struct {
	ID               uint                 `json:"id"`
	Tags             []models.Tag         `json:"tags"`
	Author           UserResponse         `json:"author"`
	Ingredients      []IngredientInRecipe `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
}

// RecipeSummary is the short recipe shape used by relation responses and
// subscription listings.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionResponse is a followed author together with their recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int             `json:"recipes_count"`
}

func imageURL(key string) string {
	if key == "" {
		return ""
	}
	return mediaPath + key
}

func presentUser(user *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func presentRecipeSummary(recipe *models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       imageURL(recipe.ImageKey),
		CookingTime: recipe.CookingTime,
	}
}

func presentRecipe(recipe *models.Recipe, authorSubscribed, favorited, inCart bool) RecipeResponse {
	ingredients := make([]IngredientInRecipe, len(recipe.IngredientLines))
	for i, line := range recipe.IngredientLines {
		ingredients[i] = IngredientInRecipe{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		}
	}
	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           presentUser(&recipe.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             recipe.Name,
		Image:            imageURL(recipe.ImageKey),
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// presentRecipes resolves the per-viewer flags for a page of recipes in three
// batched queries and maps them to API shapes.
func (s *Server) presentRecipes(ctx context.Context, viewerID uint, recipes []models.Recipe) ([]RecipeResponse, error) {
	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	seenAuthors := make(map[uint]bool)
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
		if !seenAuthors[recipes[i].AuthorID] {
			seenAuthors[recipes[i].AuthorID] = true
			authorIDs = append(authorIDs, recipes[i].AuthorID)
		}
	}

	flags, err := s.relationService.FlagsFor(ctx, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.relationService.SubscribedAuthors(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		out[i] = presentRecipe(r, subscribed[r.AuthorID], flags.Favorited[r.ID], flags.InCart[r.ID])
	}
	return out, nil
}
