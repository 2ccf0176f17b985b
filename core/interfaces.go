// Package core defines the pipeline types and stage interfaces for wikitables.
// Each stage of the pipeline is a small, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// TableMetadata describes one <table> element of a page.
type TableMetadata struct {
	// Index is the position of the table among all tables of the page,
	// in document order. It is the key used to pair metadata with tables.
	Index      int      `json:"-" yaml:"-"`
	Caption    *string  `json:"caption" yaml:"caption"`
	SourceURL  string   `json:"source_url" yaml:"source_url"`
	CSSClasses []string `json:"css_classes" yaml:"css_classes"`
}

// Table is a parsed HTML table before cleaning.
// Every header level and every row has the same width.
type Table struct {
	Index  int
	Header [][]string
	Rows   [][]string
}

// Width returns the number of columns of the table.
func (t *Table) Width() int {
	if len(t.Header) > 0 {
		return len(t.Header[0])
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls table metadata and class-filtered tables out of raw HTML.
type Extractor interface {
	Metadata(html string, sourceURL string) ([]TableMetadata, error)
	Tables(html string, class string) ([]Table, error)
}

// Cleaner turns a parsed table into a typed, normalized table.
type Cleaner interface {
	Clean(t *Table) *CleanedTable
}

// Renderer converts a cleaned table (and its metadata) into a final output format.
type Renderer interface {
	Render(t *CleanedTable, meta TableMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".csv", ".json").
	Extension() string
}
