package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/wikitables/core"
)

// JSONRenderer writes {"metadata": {...}, "data": [{column: value}, ...]}.
// Row objects keep the column order of the table and missing values are null.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonDocument struct {
	Metadata core.TableMetadata `json:"metadata"`
	Data     []jsonRow          `json:"data"`
}

// jsonRow is one row of a table, marshaled as an object in column order.
type jsonRow struct {
	table *core.CleanedTable
	index int
}

func (r jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for j, c := range r.table.Columns {
		if j > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, c.Header()); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, c.Value(r.index)); err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Header(), err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue appends v as JSON to buf without escaping HTML characters.
func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Render encodes t and meta as indented JSON.
func (r *JSONRenderer) Render(t *core.CleanedTable, meta core.TableMetadata) ([]byte, error) {
	doc := jsonDocument{Metadata: meta, Data: make([]jsonRow, t.RowCount)}
	if doc.Metadata.CSSClasses == nil {
		doc.Metadata.CSSClasses = []string{}
	}
	for i := range doc.Data {
		doc.Data[i] = jsonRow{table: t, index: i}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
