package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
)

// Output formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatXLSX     = "xlsx"
	FormatMarkdown = "md"
	FormatPDF      = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatCSV, FormatJSON, FormatYAML, FormatXLSX, FormatMarkdown, FormatPDF}

// DefaultClass is the class Wikipedia uses for standard content tables.
const DefaultClass = "wikitable"

// Options are the per-URL settings of one pipeline run. In batch mode every
// line carries its own copy.
type Options struct {
	URL       string `validate:"required,http_url"`
	OutputDir string `validate:"required"`
	Format    string `validate:"oneof=csv json yaml xlsx md pdf"`
	Class     string `validate:"required"`
	Name      string `validate:"omitempty,excludesall=/\\"`
}

// DefaultOptions returns the options used when no flag or config overrides them.
func DefaultOptions() Options {
	return Options{
		OutputDir: ".",
		Format:    FormatCSV,
		Class:     DefaultClass,
	}
}

// BindFlags registers the per-URL flags on fs, using the current values of o
// as defaults. The CLI and the batch line parser share it so that a batch
// line accepts exactly the flags of a single run.
func BindFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.OutputDir, "output-dir", "o", o.OutputDir, "directory to save the output files")
	fs.StringVarP(&o.Format, "format", "f", o.Format, "output format: "+strings.Join(Formats, ", "))
	fs.StringVarP(&o.Class, "class", "c", o.Class, "CSS class of the tables to scrape")
	fs.StringVarP(&o.Name, "name", "n", o.Name, "base name for output files (default: derived from URL)")
}

var validate = validator.New()

// Validate checks the options and returns a readable error for the first
// offending field.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", strings.ToLower(e.Field()), formatValidationError(e)))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "http_url":
		return fmt.Sprintf("must be an absolute http(s) URL, got %q", e.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", e.Param(), e.Value())
	case "excludesall":
		return "must not contain path separators"
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
