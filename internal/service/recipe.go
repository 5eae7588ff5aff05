package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-suggestions/backend/internal/models"
	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
)

var (
	// ErrRecipeNotFound covers both unknown ids and recipes owned by someone else
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRecipe is returned when a recipe fails validation after trimming
	ErrInvalidRecipe = errors.New("invalid recipe")
)

// RecipeService handles saved recipe operations
type RecipeService struct {
	db               *gorm.DB
	embeddingService EmbeddingServiceInterface
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, embeddingService EmbeddingServiceInterface) *RecipeService {
	if embeddingService == nil {
		embeddingService = NewEmbeddingService()
	}
	return &RecipeService{
		db:               db,
		embeddingService: embeddingService,
	}
}

func (s *RecipeService) apply(dst *models.Recipe, src suggest.Recipe) error {
	src = suggest.NormalizeRecipe(src)
	if err := suggest.ValidateRecipe(src); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	vec, err := s.embeddingService.GenerateEmbedding(embeddingText(src))
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}
	dst.Name = src.Name
	dst.Ingredients = models.IngredientList(src.Ingredients)
	dst.Instructions = src.Instructions
	dst.Embedding = vec
	return nil
}

// CreateRecipe saves a recipe for userID
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, recipe suggest.Recipe) (*models.Recipe, error) {
	saved := &models.Recipe{UserID: userID}
	if err := s.apply(saved, recipe); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return saved, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces the content of a recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, recipe suggest.Recipe) (*models.Recipe, error) {
	existing, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(existing, recipe); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return existing, nil
}

// DeleteRecipe deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// ListRecipes lists a user's recipes, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error) {
	return s.find(s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC"))
}

// SearchRecipes searches a user's recipes by keyword. On postgres matches are
// ordered by embedding distance to the query.
func (s *RecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]*models.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListRecipes(ctx, userID)
	}

	like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	dbQuery := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(instructions) LIKE ? ESCAPE '\' OR items_text LIKE ? ESCAPE '\'`,
			like, like, like)

	if s.db.Dialector.Name() == "postgres" {
		vec, err := s.embeddingService.GenerateEmbedding(query)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}
		dbQuery = dbQuery.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
		})
	} else {
		dbQuery = dbQuery.Order("created_at DESC")
	}

	return s.find(dbQuery)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *RecipeService) find(query *gorm.DB) ([]*models.Recipe, error) {
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	// Convert to []*models.Recipe
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}
