package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"foodgram/internal/models"
	"foodgram/internal/validation"

	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded rows, relation tables first.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"favorites",
		"shopping_carts",
		"subscriptions",
		"ingredient_lines",
		"recipe_tags",
		"recipe_images",
		"recipes",
		"ingredients",
		"tags",
		"users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// catalogTags are the default demo tags, colors given as hex and stored as
// CSS color names.
var catalogTags = []struct {
	Name  string
	Color string
	Slug  string
}{
	{"Breakfast", "#ffa500", "breakfast"},
	{"Lunch", "#008000", "lunch"},
	{"Dinner", "#800080", "dinner"},
	{"Dessert", "#ff69b4", "dessert"},
}

// catalogIngredients is a compact default ingredient catalog for demo use.
var catalogIngredients = []models.Ingredient{
	{Name: "butter", MeasurementUnit: "g"},
	{Name: "carrot", MeasurementUnit: "pcs"},
	{Name: "chicken breast", MeasurementUnit: "g"},
	{Name: "eggs", MeasurementUnit: "pcs"},
	{Name: "flour", MeasurementUnit: "g"},
	{Name: "garlic", MeasurementUnit: "cloves"},
	{Name: "milk", MeasurementUnit: "ml"},
	{Name: "olive oil", MeasurementUnit: "ml"},
	{Name: "onion", MeasurementUnit: "pcs"},
	{Name: "potato", MeasurementUnit: "g"},
	{Name: "rice", MeasurementUnit: "g"},
	{Name: "salt", MeasurementUnit: "g"},
	{Name: "sugar", MeasurementUnit: "g"},
	{Name: "tomato", MeasurementUnit: "pcs"},
	{Name: "water", MeasurementUnit: "ml"},
}

// SeedCatalog inserts the tag and ingredient reference data.
func (s *Seeder) SeedCatalog() ([]models.Tag, []models.Ingredient, error) {
	tags := make([]models.Tag, 0, len(catalogTags))
	for _, t := range catalogTags {
		colorName, err := validation.ColorNameFromHex(t.Color)
		if err != nil {
			return nil, nil, fmt.Errorf("tag %s: %w", t.Name, err)
		}
		tag := models.Tag{Name: t.Name, Color: colorName, Slug: t.Slug}
		if err := s.db.Create(&tag).Error; err != nil {
			return nil, nil, err
		}
		tags = append(tags, tag)
	}

	ingredients := make([]models.Ingredient, len(catalogIngredients))
	copy(ingredients, catalogIngredients)
	if err := s.db.Create(&ingredients).Error; err != nil {
		return nil, nil, err
	}

	log.Printf("Seeded %d tags and %d ingredients", len(tags), len(ingredients))
	return tags, ingredients, nil
}

// SeedUsers creates n demo users, all with the password "password123".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedRecipes creates n recipes spread across the given users.
func (s *Seeder) SeedRecipes(users []models.User, tags []models.Tag, ingredients []models.Ingredient, n int) ([]models.Recipe, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author recipes")
	}
	recipes := make([]models.Recipe, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		recipe, err := s.factory.CreateRecipe(&author, tags, ingredients)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	log.Printf("Seeded %d recipes", len(recipes))
	return recipes, nil
}

// SeedRelations wires random favorites, cart entries and subscriptions
// between the seeded users and recipes.
func (s *Seeder) SeedRelations(users []models.User, recipes []models.Recipe) error {
	if len(users) == 0 || len(recipes) == 0 {
		return nil
	}

	for i := range users {
		user := &users[i]

		for _, idx := range s.rand.Perm(len(recipes))[:s.rand.Intn(min(len(recipes), 5)+1)] {
			fav := models.Favorite{UserID: user.ID, RecipeID: recipes[idx].ID}
			if err := s.db.Create(&fav).Error; err != nil {
				return err
			}
		}

		for _, idx := range s.rand.Perm(len(recipes))[:s.rand.Intn(min(len(recipes), 3)+1)] {
			entry := models.ShoppingCart{UserID: user.ID, RecipeID: recipes[idx].ID}
			if err := s.db.Create(&entry).Error; err != nil {
				return err
			}
		}

		for _, idx := range s.rand.Perm(len(users))[:s.rand.Intn(min(len(users), 4))] {
			if users[idx].ID == user.ID {
				continue
			}
			sub := models.Subscription{UserID: user.ID, AuthorID: users[idx].ID}
			if err := s.db.Create(&sub).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Seeded relations")
	return nil
}

// Run executes the full demo seeding pass.
func (s *Seeder) Run(numUsers, numRecipes int) error {
	tags, ingredients, err := s.SeedCatalog()
	if err != nil {
		return err
	}
	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return err
	}
	recipes, err := s.SeedRecipes(users, tags, ingredients, numRecipes)
	if err != nil {
		return err
	}
	return s.SeedRelations(users, recipes)
}
