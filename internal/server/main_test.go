package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server over an in-memory sqlite DB, without the
// Prometheus middleware so parallel tests do not fight over the registry.
func newTestServer(t *testing.T) (*Server, *gorm.DB, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		JWTSecret: "test-secret-key-for-handler-tests-only",
		Port:      "8000",
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	imageRepo := repository.NewImageRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	shoppingRepo := repository.NewShoppingListRepository(db)

	s := &Server{
		config:           cfg,
		db:               db,
		userRepo:         userRepo,
		tagRepo:          tagRepo,
		ingredientRepo:   ingredientRepo,
		recipeRepo:       recipeRepo,
		imageRepo:        imageRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
		shoppingRepo:     shoppingRepo,
		recipeService:    service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, imageRepo),
		relationService:  service.NewRelationService(favoriteRepo, cartRepo, subscriptionRepo, userRepo, recipeRepo),
		shoppingService:  service.NewShoppingListService(shoppingRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, db, app
}

// createTestUser persists a user and returns it with a valid bearer token.
func createTestUser(t *testing.T, s *Server, db *gorm.DB, username, email string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username:  username,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  "$2a$10$unusedhashunusedhashunusedhashun",
	}
	require.NoError(t, db.Create(user).Error)

	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func seedTestCatalog(t *testing.T, db *gorm.DB) ([]models.Tag, []models.Ingredient) {
	t.Helper()

	tags := []models.Tag{
		{Name: "Breakfast", Color: "orange", Slug: "breakfast"},
		{Name: "Dinner", Color: "purple", Slug: "dinner"},
	}
	ingredients := []models.Ingredient{
		{Name: "egg", MeasurementUnit: "pcs"},
		{Name: "salt", MeasurementUnit: "g"},
	}
	require.NoError(t, db.Create(&tags).Error)
	require.NoError(t, db.Create(&ingredients).Error)
	return tags, ingredients
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// tinyPNG is a 1x1 transparent PNG, base64 encoded.
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
