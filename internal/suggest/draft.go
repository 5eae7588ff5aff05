package suggest

import (
	"fmt"
	"strings"
)

// Draft is the ordered list of ingredient rows a user is editing. It always
// holds at least one row so the form can be submitted.
type Draft struct {
	rows []string
}

// NewDraft returns a draft with a single blank row
func NewDraft() *Draft {
	return &Draft{rows: []string{""}}
}

// DraftOf returns a draft holding the given rows, or one blank row when none are given
func DraftOf(rows ...string) *Draft {
	if len(rows) == 0 {
		return NewDraft()
	}
	return &Draft{rows: append([]string(nil), rows...)}
}

// Len returns the number of rows
func (d *Draft) Len() int {
	return len(d.rows)
}

// Row returns the text of row i
func (d *Draft) Row(i int) string {
	d.mustIndex(i)
	return d.rows[i]
}

// Rows returns a copy of every row, blanks included
func (d *Draft) Rows() []string {
	return append([]string(nil), d.rows...)
}

// AddRow appends an empty row
func (d *Draft) AddRow() {
	d.rows = append(d.rows, "")
}

// UpdateRow replaces the text of row i. An out of range index panics.
func (d *Draft) UpdateRow(i int, value string) {
	d.mustIndex(i)
	d.rows[i] = value
}

// RemoveRow deletes row i and reports whether it did. The last remaining row
// is never removed. An out of range index panics.
func (d *Draft) RemoveRow(i int) bool {
	d.mustIndex(i)
	if len(d.rows) == 1 {
		return false
	}
	d.rows = append(d.rows[:i:i], d.rows[i+1:]...)
	return true
}

// Reset discards every row and starts again from one blank row
func (d *Draft) Reset() {
	d.rows = []string{""}
}

// Ingredients returns the trimmed, non-empty rows in order
func (d *Draft) Ingredients() []string {
	out := make([]string, 0, len(d.rows))
	for _, row := range d.rows {
		if s := strings.TrimSpace(row); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Request builds the body for the suggestion service
func (d *Draft) Request() Request {
	return Request{Ingredients: d.Ingredients()}
}

func (d *Draft) mustIndex(i int) {
	if i < 0 || i >= len(d.rows) {
		panic(fmt.Sprintf("suggest: row index %d out of range [0,%d)", i, len(d.rows)))
	}
}
