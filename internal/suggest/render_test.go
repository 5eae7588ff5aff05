package suggest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var omelette = Recipe{
	Name: "Omelette",
	Ingredients: []Ingredient{
		{Item: "eggs", Missing: false},
		{Item: "cheese", Missing: true},
	},
	Instructions: "Beat and fry.",
}

func TestRenderTextNothing(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderText(&out, View{}))
	assert.Empty(t, out.String())
}

func TestRenderText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderText(&out, View{Recipes: []Recipe{omelette}}))

	want := `Suggested Recipes

Omelette
  Ingredients:
    - eggs
    - cheese (missing)
  Instructions:
    Beat and fry.
`
	assert.Equal(t, want, out.String())
}

func TestRenderTextErrorAndResultsTogether(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderText(&out, View{Err: "failed to fetch recipes: status 500", Recipes: []Recipe{omelette}}))

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "Error: failed to fetch recipes: status 500\n"))
	assert.Contains(t, s, "Omelette")
}

func TestRenderTextEmptyResult(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderText(&out, View{Recipes: []Recipe{}}))
	assert.Contains(t, out.String(), "(no recipes suggested)")
}

func TestRenderTextLoading(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderText(&out, View{Loading: true}))
	assert.Equal(t, "Getting suggestions...\n", out.String())
}

func TestRenderTextStripsControlCharacters(t *testing.T) {
	r := Recipe{
		Name:         "Evil\x1b[2J Soup",
		Ingredients:  []Ingredient{{Item: "salt\x07"}},
		Instructions: "line one\nline\x1b]0;title\x07 two",
	}
	var out bytes.Buffer
	require.NoError(t, RenderText(&out, View{Recipes: []Recipe{r}}))

	s := out.String()
	assert.NotContains(t, s, "\x1b")
	assert.NotContains(t, s, "\x07")
	assert.Contains(t, s, "Evil[2J Soup")
	assert.Contains(t, s, "    line one\n    line]0;title two\n")
}

func TestRenderHTML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderHTML(&out, View{Recipes: []Recipe{omelette}}))

	s := out.String()
	assert.Contains(t, s, "<h2>Suggested Recipes</h2>")
	assert.Contains(t, s, "<h3>Omelette</h3>")
	assert.Contains(t, s, `<li data-missing="false">eggs</li>`)
	assert.Contains(t, s, `<li class="missing" data-missing="true">cheese <span class="annotation">(missing)</span></li>`)
	assert.Contains(t, s, `<p class="instructions">Beat and fry.</p>`)
	assert.NotContains(t, s, `role="alert"`)
}

func TestRenderHTMLEscapesServiceText(t *testing.T) {
	r := Recipe{
		Name:         "<script>alert(1)</script>",
		Ingredients:  []Ingredient{{Item: "<b>salt</b>", Missing: true}},
		Instructions: "**Stir** <img src=x onerror=alert(1)>",
	}
	var out bytes.Buffer
	require.NoError(t, RenderHTML(&out, View{Recipes: []Recipe{r}, Err: "<i>bad</i>"}))

	s := out.String()
	assert.NotContains(t, s, "<script>")
	assert.NotContains(t, s, "<img")
	assert.NotContains(t, s, "<b>salt")
	assert.NotContains(t, s, "<i>bad")
	assert.Contains(t, s, "&lt;script&gt;")
	assert.Contains(t, s, "**Stir**", "instructions are shown verbatim, not as markdown")
}

func TestRenderHTMLEmptyResult(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderHTML(&out, View{Recipes: []Recipe{}}))
	assert.Contains(t, out.String(), "<h2>Suggested Recipes</h2>")
	assert.NotContains(t, out.String(), "<article")

	out.Reset()
	require.NoError(t, RenderHTML(&out, View{}))
	assert.NotContains(t, out.String(), "Suggested Recipes")
}
