// Package service implements domain logic on top of the repository layer.
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"foodgram/internal/middleware"
	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/google/uuid"
)

// IngredientAmount is one submitted ingredient reference with its amount.
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeInput carries the submitted fields for a recipe create or update.
// Image is a base64 data URI, required on both operations.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// RecipeService provides recipe business logic.
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	imageRepo      repository.ImageRepository
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	imageRepo repository.ImageRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		imageRepo:      imageRepo,
	}
}

// validate checks the submitted fields in a fixed order and reports only the
// first failure: name, tags, ingredients, text, image.
func (s *RecipeService) validate(ctx context.Context, in RecipeInput, imageRequired bool) ([]models.Tag, []models.IngredientLine, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, nil, models.NewValidationError("Name is required")
	}

	if len(in.TagIDs) == 0 {
		return nil, nil, models.NewValidationError("At least one tag is required")
	}
	seenTags := make(map[uint]bool, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if seenTags[id] {
			return nil, nil, models.NewValidationError("Tags must not repeat")
		}
		seenTags[id] = true
	}
	tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(in.TagIDs) {
		return nil, nil, models.NewValidationError("One or more tags do not exist")
	}

	if len(in.Ingredients) == 0 {
		return nil, nil, models.NewValidationError("At least one ingredient is required")
	}
	seenIngredients := make(map[uint]bool, len(in.Ingredients))
	ids := make([]uint, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if seenIngredients[ing.ID] {
			return nil, nil, models.NewValidationError("Ingredients must not repeat")
		}
		seenIngredients[ing.ID] = true
		if ing.Amount < models.MinAmount || ing.Amount > models.MaxAmount {
			return nil, nil, models.NewValidationError(
				fmt.Sprintf("Ingredient amount must be between %d and %d", models.MinAmount, models.MaxAmount))
		}
		ids = append(ids, ing.ID)
	}
	existing, err := s.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) != len(ids) {
		return nil, nil, models.NewValidationError("One or more ingredients do not exist")
	}

	if strings.TrimSpace(in.Text) == "" {
		return nil, nil, models.NewValidationError("Text is required")
	}

	if imageRequired && in.Image == "" {
		return nil, nil, models.NewValidationError("Image is required")
	}

	if in.CookingTime < models.MinCookingTime || in.CookingTime > models.MaxCookingTime {
		return nil, nil, models.NewValidationError(
			fmt.Sprintf("Cooking time must be between %d and %d", models.MinCookingTime, models.MaxCookingTime))
	}

	lines := make([]models.IngredientLine, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		lines[i] = models.IngredientLine{IngredientID: ing.ID, Amount: ing.Amount}
	}
	return tags, lines, nil
}

// storeImage decodes a base64 data URI, persists the bytes and returns the
// media key the image is served under.
func (s *RecipeService) storeImage(ctx context.Context, dataURI string) (string, error) {
	contentType, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}

	key := strings.ReplaceAll(uuid.New().String(), "-", "") + extensionFor(contentType)
	image := &models.RecipeImage{
		Key:         key,
		ContentType: contentType,
		Data:        data,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return "", err
	}
	return key, nil
}

// DecodeDataURI splits a "data:image/...;base64," payload into its content
// type and decoded bytes.
func DecodeDataURI(dataURI string) (string, []byte, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, fmt.Errorf("image must be a base64 data URI")
	}
	rest := dataURI[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("image must be base64 encoded")
	}
	contentType := rest[:sep]
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("unsupported image content type %q", contentType)
	}
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 image payload")
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("image payload is empty")
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// CreateRecipe validates the input, stores the image and inserts the recipe,
// then reads it back fully loaded.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uint, in RecipeInput) (*models.Recipe, error) {
	tags, lines, err := s.validate(ctx, in, true)
	if err != nil {
		return nil, err
	}

	imageKey, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:        authorID,
		Name:            in.Name,
		Text:            in.Text,
		ImageKey:        imageKey,
		CookingTime:     in.CookingTime,
		Tags:            tags,
		IngredientLines: lines,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	middleware.RecipesCreated.Inc()
	return s.recipeRepo.GetByID(ctx, recipe.ID)
}

// UpdateRecipe replaces the recipe's fields, tags and ingredient lines with
// the submitted set. Validation is the same full pass Create runs, so the
// image must be resubmitted too. Only the author may update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, recipeID uint, in RecipeInput) (*models.Recipe, error) {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, models.NewUnauthorizedError("Only the author can edit this recipe")
	}

	tags, lines, err := s.validate(ctx, in, true)
	if err != nil {
		return nil, err
	}

	imageKey, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:              recipeID,
		Name:            in.Name,
		Text:            in.Text,
		ImageKey:        imageKey,
		CookingTime:     in.CookingTime,
		Tags:            tags,
		IngredientLines: lines,
	}
	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(ctx, recipeID)
}

// DeleteRecipe removes the recipe. Only the author may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID {
		return models.NewUnauthorizedError("Only the author can delete this recipe")
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

// GetRecipe returns one recipe fully loaded.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

// ListRecipes returns the filtered page newest first, plus the total count.
func (s *RecipeService) ListRecipes(ctx context.Context, filters repository.RecipeFilters) ([]models.Recipe, int64, error) {
	return s.recipeRepo.List(ctx, filters)
}
