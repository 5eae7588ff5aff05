package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	router := setupTestRouter(t)
	anon := &client{t: t, router: router}

	w := anon.do(http.MethodPost, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "PasswordHash")

	// registering signs the user in through the session as well
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	w = (&client{t: t, router: router, cookie: cookie}).do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	router := setupTestRouter(t)
	anon := &client{t: t, router: router}

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing name", map[string]string{"email": "a@example.com", "password": "password123"}},
		{"bad email", map[string]string{"name": "A", "email": "nope", "password": "password123"}},
		{"short password", map[string]string{"name": "A", "email": "a@example.com", "password": "short"}},
		{"malformed json", `{"name": "A",`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := anon.do(http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "invalid request body", decode(t, w)["error"])
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	router := setupTestRouter(t)
	registerUser(t, router, "dup@example.com")

	w := (&client{t: t, router: router}).do(http.MethodPost, "/auth/register", map[string]string{
		"name":     "Again",
		"email":    "dup@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginAndLogout(t *testing.T) {
	router := setupTestRouter(t)
	registerUser(t, router, "test@example.com")
	anon := &client{t: t, router: router}

	w := anon.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = anon.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	session := &client{t: t, router: router, cookie: sessionCookie(t, w)}
	w = session.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])

	w = session.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(t, w)
	assert.True(t, cleared.MaxAge < 0)
}

func TestMeRequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := (&client{t: t, router: router}).do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = (&client{t: t, router: router, token: "garbage"}).do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = registerUser(t, router, "me@example.com").do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
