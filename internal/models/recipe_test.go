package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
)

func TestIngredientListValue(t *testing.T) {
	v, err := IngredientList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = IngredientList{{Item: "eggs"}, {Item: "cheese", Missing: true}}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"item":"eggs","missing":false},{"item":"cheese","missing":true}]`, v.(string))
}

func TestIngredientListScan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  IngredientList
	}{
		{"nil", nil, IngredientList{}},
		{"bytes", []byte(`[{"item":"eggs"}]`), IngredientList{{Item: "eggs"}}},
		{"string", `[{"item":"cheese","missing":true}]`, IngredientList{{Item: "cheese", Missing: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l IngredientList
			require.NoError(t, l.Scan(tt.input))
			assert.Equal(t, tt.want, l)
		})
	}

	var l IngredientList
	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan("not json"))
}

func TestBeforeCreateKeepsExplicitID(t *testing.T) {
	id := uuid.New()
	r := &Recipe{ID: id}
	require.NoError(t, r.BeforeCreate(nil))
	assert.Equal(t, id, r.ID)

	u := &User{}
	require.NoError(t, u.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, u.ID)
}

func TestRecipeSuggestionCopiesIngredients(t *testing.T) {
	r := &Recipe{Name: "Toast", Ingredients: IngredientList{{Item: "bread"}}, Instructions: "Toast it."}
	s := r.Suggestion()
	s.Ingredients[0].Item = "changed"

	assert.Equal(t, "bread", r.Ingredients[0].Item)
	assert.Equal(t, suggest.Recipe{Name: "Toast", Ingredients: []suggest.Ingredient{{Item: "changed"}}, Instructions: "Toast it."}, s)
}

func TestRecipeBeforeSaveIndexesItemsOnly(t *testing.T) {
	r := &Recipe{Ingredients: IngredientList{{Item: "Eggs"}, {Item: "Cheese", Missing: true}}}
	require.NoError(t, r.BeforeSave(nil))
	assert.Equal(t, "eggs\ncheese", r.ItemsText)
	assert.NotContains(t, r.ItemsText, "missing")
	assert.Empty(t, IngredientList{}.SearchText())
}
