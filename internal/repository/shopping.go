package repository

import (
	"context"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// ShoppingListItem is one aggregated row of a user's shopping list.
// Ingredients sharing a name but measured in different units stay separate.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

// ShoppingListRepository aggregates ingredient amounts across all recipes in
// a user's shopping cart.
type ShoppingListRepository interface {
	Aggregate(ctx context.Context, userID uint) ([]ShoppingListItem, error)
}

type shoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository returns a new ShoppingListRepository implementation.
func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

func (r *shoppingListRepository) Aggregate(ctx context.Context, userID uint) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	if err := r.db.WithContext(ctx).
		Table("shopping_carts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_lines.amount) AS total").
		Joins("JOIN ingredient_lines ON ingredient_lines.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}
