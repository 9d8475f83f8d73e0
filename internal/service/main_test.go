package service

import (
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) ([]models.Tag, []models.Ingredient, models.User) {
	t.Helper()

	tags := []models.Tag{
		{Name: "Breakfast", Color: "orange", Slug: "breakfast"},
		{Name: "Dinner", Color: "purple", Slug: "dinner"},
	}
	ingredients := []models.Ingredient{
		{Name: "egg", MeasurementUnit: "pcs"},
		{Name: "salt", MeasurementUnit: "g"},
	}
	author := models.User{Username: "chef", Email: "chef@e.com", Password: "pw"}

	require.NoError(t, db.Create(&tags).Error)
	require.NoError(t, db.Create(&ingredients).Error)
	require.NoError(t, db.Create(&author).Error)
	return tags, ingredients, author
}

// tinyPNG is a 1x1 transparent PNG, base64 encoded.
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
