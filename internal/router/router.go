package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/recipe-suggestions/backend/config"
	"github.com/pageza/recipe-suggestions/backend/internal/api"
	"github.com/pageza/recipe-suggestions/backend/internal/middleware"
	"github.com/pageza/recipe-suggestions/backend/internal/service"
)

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            api.Pinger
	RateStore     middleware.Store
	AuthService   service.IAuthService
	RecipeService service.IRecipeService
}

// SetupRouter configures the gateway. Stages run in this order: security
// headers, CORS, rate limiting, session, authentication, body limits,
// then the /auth and /recipes routes. The error handler sits inside request
// logging and metrics, so both record the 500 it writes, and ahead of every
// gateway stage, so it answers for all of them.
func SetupRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Metrics(),
		middleware.ErrorHandler(deps.Logger),
		middleware.SecurityHeaders(cfg.IsProduction()),
	)

	// Operational endpoints skip CORS, rate limiting and sessions
	router.GET("/health", api.HealthHandler(deps.DB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(deps.RateStore, middleware.RateLimitConfig{
		Window: cfg.RateLimitWindow,
		Limit:  cfg.RateLimitMax,
	}, deps.Logger)

	router.Use(
		middleware.CORS(cfg.FrontendURL),
		limiter.RateLimitMiddleware(),
		middleware.Session(middleware.SessionConfig{
			Name:   cfg.SessionName,
			Secret: cfg.SessionSecret,
			MaxAge: cfg.SessionMaxAge,
			Secure: cfg.IsProduction(),
		}),
		middleware.Authenticate(deps.AuthService),
		middleware.BodyLimit(middleware.DefaultBodyLimit),
	)

	api.RegisterRoutes(&router.RouterGroup, deps.AuthService, deps.RecipeService)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router, nil
}
