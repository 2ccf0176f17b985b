// Package render provides output renderers for the wikitables pipeline.
// Every renderer turns one cleaned table and its metadata into the bytes of a
// single output file.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wikitables/core"
)

// ForFormat returns the renderer for one of core.Formats.
func ForFormat(format string) (core.Renderer, error) {
	switch strings.ToLower(format) {
	case core.FormatCSV:
		return NewCSVRenderer(), nil
	case core.FormatJSON:
		return NewJSONRenderer(), nil
	case core.FormatYAML:
		return NewYAMLRenderer(), nil
	case core.FormatXLSX:
		return NewXLSXRenderer(), nil
	case core.FormatMarkdown:
		return NewMarkdownRenderer(), nil
	case core.FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(core.Formats, ", "))
	}
}

// caption returns the caption of meta, or "" when it has none.
func caption(meta core.TableMetadata) string {
	if meta.Caption == nil {
		return ""
	}
	return *meta.Caption
}
