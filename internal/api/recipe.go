package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-suggestions/backend/internal/middleware"
	"github.com/pageza/recipe-suggestions/backend/internal/service"
	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
	"github.com/pageza/recipe-suggestions/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes", middleware.RequireAuth())
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	recipe, ok := bindRecipe(c)
	if !ok {
		return
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, recipe)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": created})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, ok := bindRecipe(c)
	if !ok {
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, recipe)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": updated})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, service.ErrInvalidRecipe):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe", "details": err.Error()})
	default:
		_ = c.Error(err)
	}
}

// recipeID parses the :id parameter. A malformed id cannot name any recipe,
// so it gets the same 404 as an unknown one.
func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return uuid.Nil, false
	}
	return id, true
}

func bindRecipe(c *gin.Context) (suggest.Recipe, bool) {
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return suggest.Recipe{}, false
	}

	recipe := suggest.NormalizeRecipe(req.Suggestion())
	if err := suggest.ValidateRecipe(recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe", "details": err.Error()})
		return suggest.Recipe{}, false
	}
	return recipe, true
}
