package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gaurav-prasanna/wikitables/core"
)

// CSVRenderer writes a header row followed by one record per row.
// Missing values become empty fields.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render encodes t as CSV. Metadata is not part of the CSV output.
func (r *CSVRenderer) Render(t *core.CleanedTable, _ core.TableMetadata) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers()); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for i := 0; i < t.RowCount; i++ {
		if err := w.Write(t.StringRow(i)); err != nil {
			return nil, fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for CSV output.
func (r *CSVRenderer) Extension() string {
	return ".csv"
}
