package repository

import (
	"context"
	"errors"

	"foodgram/internal/cache"
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// RecipeFilters narrows a recipe listing. Zero values mean "no filter".
type RecipeFilters struct {
	TagSlugs    []string
	AuthorID    uint
	FavoritedBy uint
	InCartOf    uint
	Limit       int
	Offset      int
}

// RecipeRepository defines persistence operations for recipes and their
// ingredient lines and tag links.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters RecipeFilters) ([]models.Recipe, int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe row together with its tag links and ingredient
// lines in one transaction. Associations on the struct are persisted by GORM.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Recipe contains duplicate ingredients")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads the recipe with all joins resolved, served cache-aside so
// repeated detail reads skip the three preload queries.
func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe

	err := cache.Aside(ctx, cache.RecipeKey(id), &recipe, cache.RecipeTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Author").
			Preload("Tags").
			Preload("IngredientLines.Ingredient").
			First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Recipe", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update replaces the recipe's scalar fields, tag links and ingredient lines
// wholesale. Lines carried over from the previous version are deleted first,
// so the stored set always equals the submitted set.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image_key":    recipe.ImageKey,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Tags").Replace(recipe.Tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		for i := range recipe.IngredientLines {
			recipe.IngredientLines[i].ID = 0
			recipe.IngredientLines[i].RecipeID = recipe.ID
		}
		if len(recipe.IngredientLines) > 0 {
			if err := tx.Create(&recipe.IngredientLines).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Recipe contains duplicate ingredients")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

// Delete removes the recipe row. Lines, tag links and relation rows go with
// it via FK cascade.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

func (r *recipeRepository) filtered(ctx context.Context, f RecipeFilters) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Recipe{})
	if len(f.TagSlugs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
	}
	if f.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.FavoritedBy != 0 {
		q = q.Joins("JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?", f.FavoritedBy)
	}
	if f.InCartOf != 0 {
		q = q.Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?", f.InCartOf)
	}
	return q
}

// List returns the filtered page newest first, plus the total match count.
// Tag filtering is any-of, so matches are deduplicated.
func (r *recipeRepository) List(ctx context.Context, f RecipeFilters) ([]models.Recipe, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Distinct("recipes.id").Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	pageQuery := r.filtered(ctx, f).
		Select("DISTINCT recipes.id, recipes.pub_date").
		Order("recipes.pub_date DESC, recipes.id DESC")
	if f.Limit > 0 {
		pageQuery = pageQuery.Limit(f.Limit)
	}
	if f.Offset > 0 {
		pageQuery = pageQuery.Offset(f.Offset)
	}

	var page []models.Recipe
	if err := pageQuery.Scan(&page).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if len(page) == 0 {
		return []models.Recipe{}, total, nil
	}
	ids := make([]uint, len(page))
	for i, rec := range page {
		ids[i] = rec.ID
	}

	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("IngredientLines.Ingredient").
		Where("id IN ?", ids).
		Order("pub_date DESC, id DESC").
		Find(&recipes).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return recipes, total, nil
}
