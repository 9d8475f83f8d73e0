// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"foodgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:  fmt.Sprintf("u%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Password:  string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateRecipe constructs and persists a recipe for the author, picking a
// random subset of the given tags and ingredients.
func (f *Factory) CreateRecipe(author *models.User, tags []models.Tag, ingredients []models.Ingredient, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	if len(tags) == 0 || len(ingredients) == 0 {
		return nil, fmt.Errorf("seed catalog is empty")
	}

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        gofakeit.Dinner(),
		Text:        gofakeit.Paragraph(1, 3, 8, "\n"),
		CookingTime: f.rand.Intn(120) + 5,
		Tags:        pickTags(f.rand, tags),
	}

	// realistic pub_date spread
	daysBack := f.rand.Intn(90)
	recipe.PubDate = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	lineCount := f.rand.Intn(4) + 2
	if lineCount > len(ingredients) {
		lineCount = len(ingredients)
	}
	for _, idx := range f.rand.Perm(len(ingredients))[:lineCount] {
		recipe.IngredientLines = append(recipe.IngredientLines, models.IngredientLine{
			IngredientID: ingredients[idx].ID,
			Amount:       f.rand.Intn(500) + 1,
		})
	}

	for _, override := range overrides {
		override(recipe)
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func pickTags(r *rand.Rand, tags []models.Tag) []models.Tag {
	count := r.Intn(len(tags)) + 1
	picked := make([]models.Tag, 0, count)
	for _, idx := range r.Perm(len(tags))[:count] {
		picked = append(picked, tags[idx])
	}
	return picked
}
