// Package suggest holds the ingredient draft editor, the client for the external
// recipe suggestion service, and the renderers for its results.
package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request is the body sent to the suggestion service
type Request struct {
	Ingredients []string `json:"ingredients"`
}

// Ingredient is one line of a suggested recipe
type Ingredient struct {
	Item    string `json:"item" validate:"required"`
	Missing bool   `json:"missing"`
}

// Recipe is a single suggestion returned by the service
type Recipe struct {
	Name         string       `json:"name" validate:"required"`
	Ingredients  []Ingredient `json:"ingredients" validate:"required,dive"`
	Instructions string       `json:"instructions"`
}

// MissingItems returns the items the service flagged as absent from the draft
func (r Recipe) MissingItems() []string {
	var out []string
	for _, ing := range r.Ingredients {
		if ing.Missing {
			out = append(out, ing.Item)
		}
	}
	return out
}

// ErrInvalidResponse is returned when the service answers 2xx with a body that
// does not match the expected shape
var ErrInvalidResponse = errors.New("invalid suggestion response")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeResponse parses and validates a suggestion service body. Order is preserved.
func DecodeResponse(body []byte) ([]Recipe, error) {
	var recipes []Recipe
	if err := json.Unmarshal(body, &recipes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if recipes == nil {
		return nil, fmt.Errorf("%w: expected an array of recipes", ErrInvalidResponse)
	}
	for i := range recipes {
		if err := ValidateRecipe(recipes[i]); err != nil {
			return nil, fmt.Errorf("%w: recipe %d: %v", ErrInvalidResponse, i, err)
		}
	}
	return recipes, nil
}

// ValidateRecipe checks a recipe against its validate tags
func ValidateRecipe(r Recipe) error {
	return validate.Struct(r)
}

// NormalizeRecipe returns a copy with the name and ingredient items trimmed,
// so a blank name fails ValidateRecipe instead of being stored empty.
func NormalizeRecipe(r Recipe) Recipe {
	out := Recipe{
		Name:         strings.TrimSpace(r.Name),
		Instructions: r.Instructions,
	}
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			out.Ingredients[i] = Ingredient{Item: strings.TrimSpace(ing.Item), Missing: ing.Missing}
		}
	}
	return out
}
