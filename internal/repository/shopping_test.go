package repository

import (
	"context"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedShoppingFixtures(t *testing.T, db *gorm.DB) (models.User, []models.Ingredient) {
	t.Helper()

	user := models.User{Username: "shopper", Email: "shopper@e.com", Password: "pw"}
	require.NoError(t, db.Create(&user).Error)

	ingredients := []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "milk", MeasurementUnit: "g"}, // condensed milk, different unit
	}
	require.NoError(t, db.Create(&ingredients).Error)
	return user, ingredients
}

func addRecipeToCart(t *testing.T, db *gorm.DB, user models.User, lines []models.IngredientLine) {
	t.Helper()

	recipe := models.Recipe{
		AuthorID:        user.ID,
		Name:            "R",
		Text:            "T",
		CookingTime:     5,
		IngredientLines: lines,
	}
	require.NoError(t, db.Create(&recipe).Error)
	require.NoError(t, db.Create(&models.ShoppingCart{UserID: user.ID, RecipeID: recipe.ID}).Error)
}

func TestShoppingListRepository_Aggregate(t *testing.T) {
	db := setupTestDB(t)
	user, ingredients := seedShoppingFixtures(t, db)
	ctx := context.Background()

	flour, milkMl, milkG := ingredients[0], ingredients[1], ingredients[2]

	addRecipeToCart(t, db, user, []models.IngredientLine{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: milkMl.ID, Amount: 100},
	})
	addRecipeToCart(t, db, user, []models.IngredientLine{
		{IngredientID: flour.ID, Amount: 300},
		{IngredientID: milkG.ID, Amount: 50},
	})

	repo := NewShoppingListRepository(db)
	items, err := repo.Aggregate(ctx, user.ID)
	require.NoError(t, err)

	// flour merges across recipes; the two milks stay apart by unit.
	require.Len(t, items, 3)
	assert.Equal(t, ShoppingListItem{Name: "flour", MeasurementUnit: "g", Total: 500}, items[0])
	assert.Equal(t, ShoppingListItem{Name: "milk", MeasurementUnit: "g", Total: 50}, items[1])
	assert.Equal(t, ShoppingListItem{Name: "milk", MeasurementUnit: "ml", Total: 100}, items[2])
}

func TestShoppingListRepository_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedShoppingFixtures(t, db)

	repo := NewShoppingListRepository(db)
	items, err := repo.Aggregate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestShoppingListRepository_OnlyOwnCart(t *testing.T) {
	db := setupTestDB(t)
	user, ingredients := seedShoppingFixtures(t, db)
	ctx := context.Background()

	other := models.User{Username: "other", Email: "other@e.com", Password: "pw"}
	require.NoError(t, db.Create(&other).Error)

	addRecipeToCart(t, db, user, []models.IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 100},
	})

	repo := NewShoppingListRepository(db)
	items, err := repo.Aggregate(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
