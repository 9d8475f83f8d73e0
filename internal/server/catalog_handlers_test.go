package server

import (
	"fmt"
	"net/http"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagHandlers(t *testing.T) {
	_, db, app := newTestServer(t)
	tags, _ := seedTestCatalog(t, db)

	t.Run("list", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tags/", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.Tag
		decodeBody(t, resp, &body)
		assert.Len(t, body, 2)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tags/%d", tags[0].ID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Tag
		decodeBody(t, resp, &body)
		assert.Equal(t, "breakfast", body.Slug)
		assert.Equal(t, "orange", body.Color)
	})

	t.Run("missing is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/tags/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestIngredientHandlers(t *testing.T) {
	_, db, app := newTestServer(t)
	_, ingredients := seedTestCatalog(t, db)

	t.Run("list all", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.Ingredient
		decodeBody(t, resp, &body)
		assert.Len(t, body, 2)
	})

	t.Run("prefix search is case-insensitive", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/?name=EG", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.Ingredient
		decodeBody(t, resp, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "egg", body[0].Name)
	})

	t.Run("no match returns empty list", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/?name=zzz", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.Ingredient
		decodeBody(t, resp, &body)
		assert.Empty(t, body)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/ingredients/%d", ingredients[1].ID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Ingredient
		decodeBody(t, resp, &body)
		assert.Equal(t, "salt", body.Name)
		assert.Equal(t, "g", body.MeasurementUnit)
	})
}

func TestHealthEndpoints(t *testing.T) {
	_, _, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])
}
