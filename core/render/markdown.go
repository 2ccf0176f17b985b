package render

import (
	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// MarkdownRenderer writes a GitHub-flavored Markdown table. The caption, when
// present, becomes a heading above it and the source URL a line below it.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render formats t as Markdown. Numeric columns are right aligned.
func (r *MarkdownRenderer) Render(t *core.CleanedTable, meta core.TableMetadata) ([]byte, error) {
	tw := table.NewWriter()
	if c := caption(meta); c != "" {
		tw.SetTitle("%s", c)
	}
	if meta.SourceURL != "" {
		tw.SetCaption("Source: %s", meta.SourceURL)
	}

	header := make(table.Row, len(t.Columns))
	var configs []table.ColumnConfig
	for j, c := range t.Columns {
		header[j] = c.Header()
		if _, ok := c.(*core.NumericColumn); ok {
			configs = append(configs, table.ColumnConfig{Number: j + 1, Align: text.AlignRight})
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for i := 0; i < t.RowCount; i++ {
		row := make(table.Row, len(t.Columns))
		for j, cell := range t.StringRow(i) {
			row[j] = cell
		}
		tw.AppendRow(row)
	}

	return []byte(tw.RenderMarkdown() + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
