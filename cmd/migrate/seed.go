package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/recipe-suggestions/backend/internal/database"
	"github.com/pageza/recipe-suggestions/backend/internal/models"
	"github.com/pageza/recipe-suggestions/backend/internal/service"
	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
)

type demoUser struct {
	name    string
	email   string
	recipes []suggest.Recipe
}

var demoUsers = []demoUser{
	{
		name:  "John Doe",
		email: "john.doe@example.com",
		recipes: []suggest.Recipe{
			{
				Name: "Pancakes",
				Ingredients: []suggest.Ingredient{
					{Item: "flour"},
					{Item: "milk"},
					{Item: "eggs"},
					{Item: "baking powder", Missing: true},
				},
				Instructions: "Whisk everything into a smooth batter.\nCook ladlefuls on a hot griddle until golden.",
			},
		},
	},
	{
		name:  "Jane Smith",
		email: "jane.smith@example.com",
		recipes: []suggest.Recipe{
			{
				Name: "Tomato Omelette",
				Ingredients: []suggest.Ingredient{
					{Item: "eggs"},
					{Item: "tomato"},
					{Item: "cheese", Missing: true},
				},
				Instructions: "Beat the eggs, fold in chopped tomato and fry.",
			},
		},
	},
	{
		name:  "Bob Wilson",
		email: "bob.wilson@example.com",
	},
}

// seed creates the demo users and their recipes. Users that already exist are skipped.
func seed(ctx context.Context, db *database.DB, password string, logger *zap.Logger) error {
	authService := service.NewAuthService(db.DB, "", 0)
	recipeService := service.NewRecipeService(db.DB, service.NewEmbeddingService())

	created := 0
	for _, u := range demoUsers {
		user, err := authService.Register(ctx, u.name, u.email, password)
		if errors.Is(err, service.ErrUserExists) {
			logger.Info("demo user exists, skipping", zap.String("email", u.email))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.email, err)
		}

		if err := seedRecipes(ctx, recipeService, user, u.recipes); err != nil {
			return err
		}
		created++
	}

	logger.Info("seeding complete", zap.Int("users_created", created))
	return nil
}

func seedRecipes(ctx context.Context, recipes service.IRecipeService, user *models.User, list []suggest.Recipe) error {
	for _, r := range list {
		if _, err := recipes.CreateRecipe(ctx, user.ID, r); err != nil {
			return fmt.Errorf("failed to create recipe %q: %w", r.Name, err)
		}
	}
	return nil
}
