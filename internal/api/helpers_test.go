package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-suggestions/backend/internal/middleware"
	"github.com/pageza/recipe-suggestions/backend/internal/service"
	"github.com/pageza/recipe-suggestions/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the handlers behind the middleware they depend on
func newTestRouter(authService service.IAuthService, recipeService service.IRecipeService) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.ErrorHandler(zap.NewNop()),
		middleware.Session(middleware.SessionConfig{
			Name:   "test.sid",
			Secret: "0123456789abcdef0123456789abcdef",
			MaxAge: 24 * time.Hour,
		}),
		middleware.Authenticate(authService),
		middleware.BodyLimit(1<<10),
	)
	RegisterRoutes(&r.RouterGroup, authService, recipeService)
	return r
}

func setupTestRouter(t *testing.T) *gin.Engine {
	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db.DB, "test-secret", time.Hour)
	recipeService := service.NewRecipeService(db.DB, nil)
	return newTestRouter(authService, recipeService)
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
	cookie *http.Cookie
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// registerUser signs up a user and returns a client holding its token
func registerUser(t *testing.T, router http.Handler, email string) *client {
	t.Helper()
	anon := &client{t: t, router: router}
	w := anon.do(http.MethodPost, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return &client{t: t, router: router, token: token}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "test.sid" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}
