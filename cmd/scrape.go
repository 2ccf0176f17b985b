package cmd

// This file holds the work of the root command:
// config → logger → pipeline, then one URL or a batch file.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/gaurav-prasanna/wikitables/core/batch"
	"github.com/gaurav-prasanna/wikitables/core/clean"
	"github.com/gaurav-prasanna/wikitables/core/config"
	"github.com/gaurav-prasanna/wikitables/core/extract"
	"github.com/gaurav-prasanna/wikitables/core/fetch"
	"github.com/gaurav-prasanna/wikitables/core/logger"
	"github.com/gaurav-prasanna/wikitables/core/pipeline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func runScrape(cmd *cobra.Command, args []string) error {
	config.SetDefaults(v)
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Debug:  cfg.Debug,
		Quiet:  cfg.Quiet,
		JSON:   cfg.LogJSON,
		Color:  isTerminal(cmd.ErrOrStderr()),
		Output: cmd.ErrOrStderr(),
	})

	switch {
	case len(args) == 0 && batchFile == "":
		_ = cmd.Usage()
		return errors.New("a URL or --batch-file is required")
	case len(args) == 1 && batchFile != "":
		return errors.New("give either a URL or --batch-file, not both")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Flags override config; per-run name only comes from the flag.
	base := core.Options{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Class:     cfg.Class,
		Name:      runOpts.Name,
	}

	limit, _ := cfg.BodyLimit()
	p := pipeline.New(
		fetch.New(fetch.Config{
			UserAgent:   cfg.UserAgent,
			Timeout:     cfg.Timeout,
			MaxBodySize: limit,
		}, log),
		extract.New(cfg.EmptyMarkers...),
		clean.New(cfg.EmptyMarkers...),
		log,
	)
	log.Debug("configuration loaded",
		"user_agent", cfg.UserAgent,
		"timeout", cfg.Timeout,
		"max_body_size", cfg.MaxBodySize,
		"config_file", v.ConfigFileUsed())

	if batchFile != "" {
		return runBatch(ctx, cmd, p, base, log)
	}
	base.URL = args[0]
	return runSingle(ctx, cmd, p, base, log)
}

// runSingle processes one URL. Any failure is fatal for the command.
func runSingle(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, opts core.Options, log *slog.Logger) error {
	res, err := p.Run(ctx, opts)
	if err != nil {
		log.Error("scrape failed", "url", opts.URL, "error", err)
		return &loggedError{err: err}
	}

	out := cmd.OutOrStdout()
	for _, path := range res.Files {
		fmt.Fprintf(out, "✓ Written: %s\n", path)
	}
	if res.Skipped > 0 {
		fmt.Fprintf(out, "%d empty table(s) skipped\n", res.Skipped)
	}
	return nil
}

// runBatch processes every line of the batch file. Line failures only fail
// the command in --strict mode.
func runBatch(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, base core.Options, log *slog.Logger) error {
	// A name given on the command line would make every line write the same files.
	base.Name = ""

	sum, err := batch.New(p, log).RunFile(ctx, batchFile, base)
	if err != nil {
		log.Error("batch aborted", "path", batchFile, "error", err)
		return &loggedError{err: err}
	}

	sum.Render(cmd.OutOrStdout())

	if strict && !sum.OK() {
		err := fmt.Errorf("%d of %d batch lines failed", sum.Failed+sum.Malformed, sum.Lines)
		log.Error("strict mode", "error", err)
		return &loggedError{err: err}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
