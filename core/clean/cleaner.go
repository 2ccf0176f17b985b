// Package clean implements the Cleaner interface.
// A parsed table goes through, in order:
//  1. footnote stripping on headers and cells
//  2. header flattening into one name per column
//  3. empty-marker normalization
//  4. pruning of fully empty rows and columns
//  5. numeric coercion, decided once per column
//
// Cleaning never fails: a column that does not parse as numbers stays text.
package clean

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wikitables/core"
)

// TableCleaner normalizes parsed tables.
type TableCleaner struct {
	markers markerSet
}

// New creates a TableCleaner. extraMarkers are treated as empty cells in
// addition to DefaultEmptyMarkers.
func New(extraMarkers ...string) *TableCleaner {
	return &TableCleaner{markers: newMarkerSet(extraMarkers)}
}

// Clean returns the normalized form of t. The result may be empty when
// nothing but markers was present.
func (c *TableCleaner) Clean(t *core.Table) *core.CleanedTable {
	width := t.Width()
	headers := FlattenHeaders(t.Header, width)

	var rows [][]core.Text
	for _, raw := range t.Rows {
		row := make([]core.Text, width)
		present := false
		for j := 0; j < width && j < len(raw); j++ {
			row[j] = c.cell(raw[j])
			present = present || row[j].Valid
		}
		if present {
			rows = append(rows, row)
		}
	}

	out := &core.CleanedTable{RowCount: len(rows)}
	for j := 0; j < width; j++ {
		values := make([]core.Text, len(rows))
		present := false
		for i, row := range rows {
			values[i] = row[j]
			present = present || row[j].Valid
		}
		if !present {
			continue
		}
		out.Columns = append(out.Columns, coerce(headers[j], values))
	}
	return out
}

func (c *TableCleaner) cell(raw string) core.Text {
	s := StripFootnotes(raw)
	if c.markers.has(s) {
		return core.Text{}
	}
	return core.Text{Value: s, Valid: true}
}

// FlattenHeaders joins multi-level headers into one name per column.
// Empty levels are skipped and consecutive repeats (from spanned header
// cells) collapse into one. Columns without any name become column_N, and
// repeated names get a numeric suffix.
func FlattenHeaders(levels [][]string, width int) []string {
	names := make([]string, width)
	for j := range names {
		var parts []string
		for _, level := range levels {
			if j >= len(level) {
				continue
			}
			p := StripFootnotes(level[j])
			if p == "" || (len(parts) > 0 && parts[len(parts)-1] == p) {
				continue
			}
			parts = append(parts, p)
		}
		names[j] = strings.Join(parts, " ")
		if names[j] == "" {
			names[j] = fmt.Sprintf("column_%d", j+1)
		}
	}

	used := make(map[string]bool, width)
	for j, base := range names {
		name := base
		for k := 2; used[name]; k++ {
			name = fmt.Sprintf("%s_%d", base, k)
		}
		used[name] = true
		names[j] = name
	}
	return names
}
