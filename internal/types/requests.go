package types

import (
	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful register or login
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// RecipeRequest is the body of POST and PUT /recipes. It has the shape of a
// suggestion so a suggested recipe can be saved as is.
type RecipeRequest struct {
	Name         string               `json:"name" binding:"required,max=255"`
	Ingredients  []suggest.Ingredient `json:"ingredients" binding:"required"`
	Instructions string               `json:"instructions"`
}

// Suggestion converts the request into the suggestion shape
func (r RecipeRequest) Suggestion() suggest.Recipe {
	return suggest.Recipe{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}
