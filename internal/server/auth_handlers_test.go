package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func signupBody(username, email string) map[string]any {
	return map[string]any{
		"username":   username,
		"email":      email,
		"first_name": "Alice",
		"last_name":  "Smith",
		"password":   "secret123",
	}
}

func TestSignup(t *testing.T) {
	_, _, app := newTestServer(t)

	t.Run("creates user and returns token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("alice", "alice@example.com"))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body authResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "alice", body.User.Username)
		assert.Equal(t, "alice@example.com", body.User.Email)
		assert.False(t, body.User.IsSubscribed)
		assert.NotZero(t, body.User.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("someoneelse", "alice@example.com"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Contains(t, body["error"], "email already exists")
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("alice", "alice2@example.com"))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Contains(t, body["error"], "username already exists")
	})

	t.Run("reserved username rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("me", "me@example.com"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		body := signupBody("bob", "bob@example.com")
		body["password"] = "short"
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{"username": "carol"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	_, _, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("dave", "dave@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("valid credentials", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "dave@example.com",
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body authResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "dave", body.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "dave@example.com",
			"password": "wrongpass1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	s, db, app := newTestServer(t)
	user, token := createTestUser(t, s, db, "authed", "authed@example.com")

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged := *s.config
		forged.JWTSecret = "a-different-secret-entirely-here"
		other := &Server{config: &forged}

		badToken, err := other.generateToken(user.ID, user.Username)
		require.NoError(t, err)

		resp := doJSON(t, app, http.MethodGet, "/api/users/me", badToken, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body UserResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, user.ID, body.ID)
	})
}
