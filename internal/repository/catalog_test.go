package repository

import (
	"context"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []models.Ingredient{
		{Name: "Cabbage", MeasurementUnit: "g"},
		{Name: "carrot", MeasurementUnit: "pcs"},
		{Name: "potato", MeasurementUnit: "g"},
		{Name: "молоко", MeasurementUnit: "ml"},
	}))

	t.Run("prefix match is case-insensitive", func(t *testing.T) {
		got, err := repo.Search(ctx, "ca")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Cabbage", got[0].Name)
		assert.Equal(t, "carrot", got[1].Name)
	})

	t.Run("non-ASCII prefix folds case too", func(t *testing.T) {
		got, err := repo.Search(ctx, "Мол")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "молоко", got[0].Name)
	})

	t.Run("prefix only, not substring", func(t *testing.T) {
		got, err := repo.Search(ctx, "rot")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty prefix lists all ordered by name", func(t *testing.T) {
		got, err := repo.Search(ctx, "")
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "potato", got[2].Name)
	})

	t.Run("LIKE metacharacters are literal", func(t *testing.T) {
		got, err := repo.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTagRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "Breakfast", Color: "orange", Slug: "breakfast"}))
	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "Dinner", Color: "purple", Slug: "dinner"}))

	t.Run("duplicate slug rejected", func(t *testing.T) {
		err := repo.Create(ctx, &models.Tag{Name: "Other", Color: "green", Slug: "dinner"})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("list", func(t *testing.T) {
		tags, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})

	t.Run("get by id", func(t *testing.T) {
		tags, _ := repo.List(ctx)
		tag, err := repo.GetByID(ctx, tags[0].ID)
		require.NoError(t, err)
		assert.Equal(t, tags[0].Slug, tag.Slug)

		_, err = repo.GetByID(ctx, 9999)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})

	t.Run("get by ids", func(t *testing.T) {
		tags, _ := repo.List(ctx)
		got, err := repo.GetByIDs(ctx, []uint{tags[0].ID, tags[1].ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = repo.GetByIDs(ctx, []uint{tags[0].ID, 9999})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
