package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
)

// IngredientList stores a recipe's ingredients as a JSON array
type IngredientList []suggest.Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]suggest.Ingredient(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}

	return json.Unmarshal(bytes, (*[]suggest.Ingredient)(l))
}

// EmbeddingDims is the width of the recipe embedding column
const EmbeddingDims = 3

// Recipe is a suggestion a user chose to keep
type Recipe struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
	UserID       uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Ingredients  IngredientList  `gorm:"type:text;not null" json:"ingredients"`
	Instructions string          `gorm:"type:text" json:"instructions"`
	Embedding    pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	// Lowercased ingredient items, one per line, for keyword search
	ItemsText    string          `gorm:"type:text" json:"-"`
}

// SearchText returns the lowercased items, one per line
func (l IngredientList) SearchText() string {
	items := make([]string, len(l))
	for i, ing := range l {
		items[i] = strings.ToLower(ing.Item)
	}
	return strings.Join(items, "\n")
}

// BeforeSave keeps ItemsText in step with Ingredients
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	r.ItemsText = r.Ingredients.SearchText()
	return nil
}

// BeforeCreate assigns an id when the caller did not
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Suggestion returns the recipe in the shape the suggestion service uses
func (r *Recipe) Suggestion() suggest.Recipe {
	ings := make([]suggest.Ingredient, len(r.Ingredients))
	copy(ings, r.Ingredients)
	return suggest.Recipe{
		Name:         r.Name,
		Ingredients:  ings,
		Instructions: r.Instructions,
	}
}
