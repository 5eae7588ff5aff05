package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-suggestions/backend/internal/service"
)

// RegisterRoutes mounts the /auth and /recipes groups on router
func RegisterRoutes(router *gin.RouterGroup, authService service.IAuthService, recipeService service.IRecipeService) {
	NewAuthHandler(authService).RegisterRoutes(router)
	NewRecipeHandler(recipeService).RegisterRoutes(router)
}
