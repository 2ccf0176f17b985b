// Package batch runs the pipeline once per line of a batch file.
//
// Each non-blank line holds one URL followed by the same flags a single run
// accepts, for example:
//
//	https://en.wikipedia.org/wiki/List_of_World_Heritage_Sites_in_India -f json -n heritage
//	# lines starting with '#' are comments
//	"https://en.wikipedia.org/wiki/List_of_tallest_buildings" -o "out dir"
//
// Lines are processed sequentially. A line that fails to parse or to run is
// logged and skipped; the driver always moves on to the next line.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/gaurav-prasanna/wikitables/core/pipeline"
	"github.com/google/shlex"
	"github.com/spf13/pflag"
)

// maxLineSize bounds a single batch line.
const maxLineSize = 1 << 20

// Runner runs the pipeline for one set of options.
type Runner interface {
	Run(ctx context.Context, opts core.Options) (*pipeline.Result, error)
}

// LineError records why a batch line produced no output.
type LineError struct {
	Line      int
	URL       string // empty when the line could not be parsed
	Malformed bool
	Err       error
}

func (e *LineError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.URL, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Summary counts the outcome of a batch run.
type Summary struct {
	Lines     int // non-blank, non-comment lines
	Succeeded int
	Failed    int // lines whose pipeline run returned an error
	Malformed int // lines that could not be parsed into options
	Files     []string
	Errors    []*LineError
}

// OK reports whether every line succeeded.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Malformed == 0
}

// Driver reads batch files and feeds each line to a Runner.
type Driver struct {
	runner Runner
	log    *slog.Logger
}

// New creates a Driver.
func New(runner Runner, log *slog.Logger) *Driver {
	return &Driver{runner: runner, log: log}
}

// RunFile processes the batch file at path. Only a file that cannot be opened
// or read is an error; per-line failures are reported in the Summary.
func (d *Driver) RunFile(ctx context.Context, path string, base core.Options) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close()

	d.log.Info("processing batch file", "path", path)
	return d.Run(ctx, f, base)
}

// Run processes every line of r. base supplies the defaults that each line's
// flags override.
func (d *Driver) Run(ctx context.Context, r io.Reader, base core.Options) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Lines++

		opts, err := ParseLine(text, base)
		if err != nil {
			le := &LineError{Line: lineNo, Malformed: true, Err: err}
			d.log.Error("skipping malformed batch line", "line", lineNo, "text", text, "error", err)
			sum.Malformed++
			sum.Errors = append(sum.Errors, le)
			continue
		}

		d.log.Info("processing batch line", "line", lineNo, "url", opts.URL)
		res, err := d.runner.Run(ctx, opts)
		if res != nil {
			sum.Files = append(sum.Files, res.Files...)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return sum, err
			}
			le := &LineError{Line: lineNo, URL: opts.URL, Err: err}
			d.log.Error("batch line failed", "line", lineNo, "url", opts.URL, "error", err)
			sum.Failed++
			sum.Errors = append(sum.Errors, le)
			continue
		}
		sum.Succeeded++
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("reading batch file: %w", err)
	}

	d.log.Info("batch complete",
		"lines", sum.Lines,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"malformed", sum.Malformed,
		"files", len(sum.Files))
	return sum, nil
}

// ParseLine splits a batch line shell-style and parses it with the flags of a
// single run, starting from base. --name is never inherited from base so that
// lines do not overwrite each other's files. Exactly one URL is required.
func ParseLine(text string, base core.Options) (core.Options, error) {
	args, err := shlex.Split(text)
	if err != nil {
		return core.Options{}, fmt.Errorf("splitting line: %w", err)
	}

	opts := base
	opts.URL = ""
	opts.Name = ""

	fs := pflag.NewFlagSet("batch line", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	core.BindFlags(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return core.Options{}, err
	}

	switch fs.NArg() {
	case 0:
		return core.Options{}, errors.New("missing URL")
	case 1:
		opts.URL = fs.Arg(0)
	default:
		return core.Options{}, fmt.Errorf("expected one URL, got %d arguments: %s", fs.NArg(), strings.Join(fs.Args(), " "))
	}

	if err := opts.Validate(); err != nil {
		return core.Options{}, err
	}
	return opts, nil
}
