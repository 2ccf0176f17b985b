package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/gaurav-prasanna/wikitables/core/clean"
	"github.com/gaurav-prasanna/wikitables/core/extract"
	"github.com/gaurav-prasanna/wikitables/core/fetch"
	"github.com/gaurav-prasanna/wikitables/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitesPage = `<html><body>
<table class="infobox"><tr><td>Ignored</td></tr></table>
<table class="wikitable sortable">
<caption>Sites[1]</caption>
<tr><th>Site</th><th>Location</th><th>Year</th></tr>
<tr><td>Taj Mahal<sup>[1]</sup></td><td>Agra</td><td>1983</td></tr>
<tr><td>—</td><td>—</td><td>—</td></tr>
</table>
<table class="sortable"><tr><th>Other</th></tr><tr><td>x</td></tr></table>
</body></html>`

const emptyFirstPage = `<html><body>
<table class="wikitable"><tr><th>A</th></tr><tr><td>—</td></tr><tr><td>N/A</td></tr></table>
<table class="wikitable"><tr><th>B</th></tr><tr><td>1,234</td></tr></table>
</body></html>`

func newServer(t *testing.T, pages map[string]string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newPipeline() *Pipeline {
	log := logger.Discard()
	return New(
		fetch.New(fetch.Config{UserAgent: "PipelineTest/1.0", Timeout: 5 * time.Second}, log),
		extract.New(),
		clean.New(),
		log,
	)
}

func options(url, dir, format string) core.Options {
	opts := core.DefaultOptions()
	opts.URL = url
	opts.OutputDir = dir
	opts.Format = format
	return opts
}

func TestRun_WritesMatchingTable(t *testing.T) {
	srv := newServer(t, map[string]string{"/wiki/Sites": sitesPage}, nil)
	dir := t.TempDir()

	res, err := newPipeline().Run(context.Background(), options(srv.URL+"/wiki/Sites", dir, core.FormatJSON))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 0, res.Skipped)
	require.Equal(t, []string{filepath.Join(dir, "Sites_table_1.json")}, res.Files)

	data, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)

	var doc struct {
		Metadata struct {
			Caption    *string  `json:"caption"`
			SourceURL  string   `json:"source_url"`
			CSSClasses []string `json:"css_classes"`
		} `json:"metadata"`
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.NotNil(t, doc.Metadata.Caption)
	assert.Equal(t, "Sites", *doc.Metadata.Caption)
	assert.Equal(t, srv.URL+"/wiki/Sites", doc.Metadata.SourceURL)
	assert.Equal(t, []string{"wikitable", "sortable"}, doc.Metadata.CSSClasses)
	assert.Equal(t, []map[string]any{
		{"Site": "Taj Mahal", "Location": "Agra", "Year": float64(1983)},
	}, doc.Data)
}

func TestRun_CustomNameAndFormat(t *testing.T) {
	srv := newServer(t, map[string]string{"/wiki/Sites": sitesPage}, nil)
	dir := t.TempDir()

	opts := options(srv.URL+"/wiki/Sites", dir, core.FormatCSV)
	opts.Name = "heritage"
	res, err := newPipeline().Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, res.Files, 1)
	assert.Equal(t, filepath.Join(dir, "heritage_table_1.csv"), res.Files[0])
	data, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Equal(t, "Site,Location,Year\nTaj Mahal,Agra,1983\n", string(data))
}

func TestRun_SkipsEmptyTablesWithoutConsumingNumbers(t *testing.T) {
	srv := newServer(t, map[string]string{"/wiki/Mixed": emptyFirstPage}, nil)
	dir := t.TempDir()

	res, err := newPipeline().Run(context.Background(), options(srv.URL+"/wiki/Mixed", dir, core.FormatCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 1, res.Skipped)
	require.Equal(t, []string{filepath.Join(dir, "Mixed_table_1.csv")}, res.Files)

	data, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Equal(t, "B\n1234\n", string(data))
}

func TestRun_FetchError(t *testing.T) {
	srv := newServer(t, map[string]string{}, nil)

	_, err := newPipeline().Run(context.Background(), options(srv.URL+"/wiki/Missing", t.TempDir(), core.FormatCSV))

	var fe *core.FetchError
	require.True(t, errors.As(err, &fe), "expected *core.FetchError, got %v", err)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestRun_NoMatchingTables(t *testing.T) {
	srv := newServer(t, map[string]string{"/wiki/Sites": sitesPage}, nil)
	dir := t.TempDir()

	opts := options(srv.URL+"/wiki/Sites", dir, core.FormatCSV)
	opts.Class = "navbox"
	res, err := newPipeline().Run(context.Background(), opts)

	var pe *core.ParseError
	require.True(t, errors.As(err, &pe), "expected *core.ParseError, got %v", err)
	assert.True(t, errors.Is(err, core.ErrNoTables))
	require.NotNil(t, res)
	assert.Empty(t, res.Files)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_InvalidOptionsDoNotFetch(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, map[string]string{"/wiki/Sites": sitesPage}, &hits)

	_, err := newPipeline().Run(context.Background(), options(srv.URL+"/wiki/Sites", t.TempDir(), "docx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
	assert.Zero(t, hits.Load())
}
