package suggest

import (
	"bufio"
	"fmt"
	"html/template"
	"io"
	"strings"
	"unicode"
)

// View is what the renderers draw: the latest recipes and error, which are
// shown independently of each other.
type View struct {
	Loading bool
	Recipes []Recipe // nil means nothing to show; empty means the service found nothing
	Err     string
}

// HasResults reports whether a response has been received
func (v View) HasResults() bool {
	return v.Recipes != nil
}

// ViewOf adapts a client snapshot for rendering
func ViewOf(s Snapshot) View {
	return View{Loading: s.Loading(), Recipes: s.Recipes, Err: s.Err}
}

// RenderText writes v as plain text for a terminal. Text from the service is
// stripped of control characters so it cannot drive the terminal.
func RenderText(w io.Writer, v View) error {
	bw := bufio.NewWriter(w)

	if v.Loading {
		fmt.Fprintln(bw, "Getting suggestions...")
	}

	if v.Err != "" {
		fmt.Fprintf(bw, "Error: %s\n", plain(v.Err))
	}

	if v.HasResults() {
		if v.Err != "" || v.Loading {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, "Suggested Recipes")
		if len(v.Recipes) == 0 {
			fmt.Fprintln(bw, "  (no recipes suggested)")
		}
		for _, r := range v.Recipes {
			fmt.Fprintf(bw, "\n%s\n", plain(r.Name))
			fmt.Fprintln(bw, "  Ingredients:")
			for _, ing := range r.Ingredients {
				if ing.Missing {
					fmt.Fprintf(bw, "    - %s (missing)\n", plain(ing.Item))
				} else {
					fmt.Fprintf(bw, "    - %s\n", plain(ing.Item))
				}
			}
			fmt.Fprintln(bw, "  Instructions:")
			for _, line := range strings.Split(plain(r.Instructions), "\n") {
				fmt.Fprintf(bw, "    %s\n", line)
			}
		}
	}

	return bw.Flush()
}

// plain drops control characters other than newline and tab
func plain(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

var htmlView = template.Must(template.New("suggestions").Parse(`<section class="recipe-suggestions">
{{- if .Loading}}
  <p class="loading" aria-busy="true">Getting Suggestions...</p>
{{- end}}
{{- if .Err}}
  <div class="error" role="alert">{{.Err}}</div>
{{- end}}
{{- if .HasResults}}
  <h2>Suggested Recipes</h2>
{{- range .Recipes}}
  <article class="recipe">
    <h3>{{.Name}}</h3>
    <h4>Ingredients:</h4>
    <ul>
{{- range .Ingredients}}
{{- if .Missing}}
      <li class="missing" data-missing="true">{{.Item}} <span class="annotation">(missing)</span></li>
{{- else}}
      <li data-missing="false">{{.Item}}</li>
{{- end}}
{{- end}}
    </ul>
    <h4>Instructions:</h4>
    <p class="instructions">{{.Instructions}}</p>
  </article>
{{- end}}
{{- end}}
</section>
`))

// RenderHTML writes v as an HTML fragment. All service text is escaped.
func RenderHTML(w io.Writer, v View) error {
	return htmlView.Execute(w, v)
}
