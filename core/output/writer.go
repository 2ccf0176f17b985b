// Package output handles file naming and writing for wikitables outputs.
// Files are written flat into the output directory as {base}.{ext}.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/wikitables/core"
)

// DefaultBaseName is used when neither --name nor the URL yields a name.
const DefaultBaseName = "wikipedia_page"

// Writer renders tables and writes them to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting outputDir. An empty outputDir means the
// current working directory. The directory is created on first write.
func New(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{OutputDir: outputDir}
}

// Write renders t with r and stores it as {OutputDir}/{baseName}{ext}. It
// returns the written path. Filesystem failures are reported as
// *core.WriteError.
func (w *Writer) Write(t *core.CleanedTable, meta core.TableMetadata, baseName string, r core.Renderer) (string, error) {
	data, err := r.Render(t, meta)
	if err != nil {
		return "", err
	}

	p := filepath.Join(w.OutputDir, baseName+r.Extension())
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return "", &core.WriteError{Path: w.OutputDir, Err: err}
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", &core.WriteError{Path: p, Err: err}
	}
	return p, nil
}

// BaseName returns name when set, otherwise a file-safe name derived from the
// last path segment of rawURL.
// Example: https://en.wikipedia.org/wiki/List_of_World_Heritage_Sites_in_India
// → List_of_World_Heritage_Sites_in_India
func BaseName(rawURL, name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return DefaultBaseName
	}
	seg := path.Base(strings.TrimRight(parsed.Path, "/"))
	if seg == "." || seg == "/" {
		return DefaultBaseName
	}

	if s := sanitize(seg); s != "" {
		return s
	}
	return DefaultBaseName
}

// TableName returns the base name of the n-th saved table of a page.
func TableName(base string, n int) string {
	return fmt.Sprintf("%s_table_%d", base, n)
}

// sanitize replaces every run of characters other than letters, digits,
// underscores and hyphens with a single underscore.
func sanitize(s string) string {
	var b strings.Builder
	run := false
	for _, ch := range s {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-' {
			b.WriteRune(ch)
			run = false
			continue
		}
		if !run {
			b.WriteRune('_')
			run = true
		}
	}
	return b.String()
}
