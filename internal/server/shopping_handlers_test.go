package server

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadShoppingCart(t *testing.T) {
	s, db, app := newTestServer(t)
	tags, ingredients := seedTestCatalog(t, db)
	_, chefToken := createTestUser(t, s, db, "chef", "chef@example.com")
	_, token := createTestUser(t, s, db, "shopper", "shopper@example.com")

	// Two recipes sharing an ingredient; amounts from recipeBody are 1 and 2.
	first := createRecipeHTTP(t, app, chefToken, recipeBody("Omelette", tags, ingredients))
	second := createRecipeHTTP(t, app, chefToken, recipeBody("Scramble", tags, ingredients))

	t.Run("requires auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/recipes/download_shopping_cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty cart renders empty file", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Empty(t, payload)
	})

	t.Run("aggregates cart recipes", func(t *testing.T) {
		for _, r := range []RecipeResponse{first, second} {
			resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", r.ID), token, nil)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
			_ = resp.Body.Close()
		}

		resp := doJSON(t, app, http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="shopping_list.txt"`, resp.Header.Get("Content-Disposition"))

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()

		// egg 1 pcs and salt 2 g per recipe, doubled across the two recipes.
		assert.Equal(t, "1 - egg  2  pcs\n2 - salt  4  g\n", string(payload))
	})
}
