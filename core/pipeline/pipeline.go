// Package pipeline runs one page through every stage:
// fetch → extract → clean → render → write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/gaurav-prasanna/wikitables/core/output"
	"github.com/gaurav-prasanna/wikitables/core/render"
)

// Pipeline wires the stages for a single URL. It holds no per-run state and
// can be reused across runs.
type Pipeline struct {
	fetcher   core.Fetcher
	extractor core.Extractor
	cleaner   core.Cleaner
	log       *slog.Logger
}

// Result summarizes one run.
type Result struct {
	URL     string
	Matched int      // tables that matched the class filter
	Skipped int      // matched tables that were empty after cleaning
	Files   []string // written paths, in table order
}

// New creates a Pipeline from its stages.
func New(fetcher core.Fetcher, extractor core.Extractor, cleaner core.Cleaner, log *slog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		cleaner:   cleaner,
		log:       log,
	}
}

// Run processes opts.URL and writes every non-empty matching table as
// {base}_table_{n}. The returned Result is valid even when an error occurs
// after some tables were written.
func (p *Pipeline) Run(ctx context.Context, opts core.Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	renderer, err := render.ForFormat(opts.Format)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	// 1. Fetch
	page, err := p.fetcher.Fetch(ctx, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	res := &Result{URL: page.URL}

	// 2. Extract metadata for every table, then the class-filtered tables
	metas, err := p.extractor.Metadata(page.HTML, page.URL)
	if err != nil {
		return res, fmt.Errorf("extract metadata: %w", err)
	}
	tables, err := p.extractor.Tables(page.HTML, opts.Class)
	if err != nil {
		return res, fmt.Errorf("parse tables: %w", err)
	}
	res.Matched = len(tables)
	p.log.Info("found tables", "url", page.URL, "class", opts.Class, "matched", len(tables), "total", len(metas))

	byIndex := make(map[int]core.TableMetadata, len(metas))
	for _, m := range metas {
		byIndex[m.Index] = m
	}

	writer := output.New(opts.OutputDir)
	base := output.BaseName(opts.URL, opts.Name)

	for i := range tables {
		t := &tables[i]
		meta, ok := byIndex[t.Index]
		if !ok {
			p.log.Warn("no metadata for table", "url", page.URL, "index", t.Index)
			meta = core.TableMetadata{Index: t.Index, SourceURL: page.URL}
		}

		// 3. Clean
		cleaned := p.cleaner.Clean(t)
		if cleaned.Empty() {
			p.log.Warn("skipping empty table", "url", page.URL, "index", t.Index)
			res.Skipped++
			continue
		}

		// 4. Render and write
		name := output.TableName(base, len(res.Files)+1)
		path, err := writer.Write(cleaned, meta, name, renderer)
		if err != nil {
			return res, fmt.Errorf("write: %w", err)
		}
		res.Files = append(res.Files, path)
		p.log.Info("saved table",
			"url", page.URL,
			"table", len(res.Files),
			"rows", cleaned.RowCount,
			"columns", len(cleaned.Columns),
			"path", path)
	}

	return res, nil
}
