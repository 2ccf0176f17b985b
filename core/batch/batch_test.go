package batch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/gaurav-prasanna/wikitables/core/clean"
	"github.com/gaurav-prasanna/wikitables/core/extract"
	"github.com/gaurav-prasanna/wikitables/core/fetch"
	"github.com/gaurav-prasanna/wikitables/core/logger"
	"github.com/gaurav-prasanna/wikitables/core/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the options it is called with.
type fakeRunner struct {
	calls []core.Options
	fail  map[string]error
}

func (f *fakeRunner) Run(_ context.Context, opts core.Options) (*pipeline.Result, error) {
	f.calls = append(f.calls, opts)
	if err := f.fail[opts.URL]; err != nil {
		return nil, err
	}
	return &pipeline.Result{URL: opts.URL, Files: []string{opts.URL + ".out"}}, nil
}

func baseOptions(dir string) core.Options {
	opts := core.DefaultOptions()
	opts.OutputDir = dir
	return opts
}

func TestParseLine(t *testing.T) {
	base := baseOptions("out")
	base.Format = core.FormatJSON
	base.Name = "from-invocation"

	tests := []struct {
		name string
		line string
		want core.Options
	}{
		{
			name: "url_only_inherits_base",
			line: "https://en.wikipedia.org/wiki/A",
			want: core.Options{URL: "https://en.wikipedia.org/wiki/A", OutputDir: "out", Format: "json", Class: "wikitable"},
		},
		{
			name: "flags_override",
			line: `https://en.wikipedia.org/wiki/B -f csv -c "wikitable sortable" --name heritage -o "my out"`,
			want: core.Options{URL: "https://en.wikipedia.org/wiki/B", OutputDir: "my out", Format: "csv", Class: "wikitable sortable", Name: "heritage"},
		},
		{
			name: "flags_before_url",
			line: "-f xlsx https://en.wikipedia.org/wiki/C",
			want: core.Options{URL: "https://en.wikipedia.org/wiki/C", OutputDir: "out", Format: "xlsx", Class: "wikitable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line, base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_Malformed(t *testing.T) {
	base := baseOptions("out")
	for _, line := range []string{
		"-f json",
		"https://a.org/wiki/A https://a.org/wiki/B",
		"https://a.org/wiki/A --unknown",
		"https://a.org/wiki/A -f docx",
		"not-a-url",
		`https://a.org/wiki/A -n "unterminated`,
		"https://a.org/wiki/A -n a/b",
	} {
		_, err := ParseLine(line, base)
		assert.Error(t, err, line)
	}
}

func TestRun_CountsAndContinues(t *testing.T) {
	input := strings.Join([]string{
		"# heritage lists",
		"https://en.wikipedia.org/wiki/A",
		"",
		"   ",
		"https://en.wikipedia.org/wiki/B --bogus",
		"https://en.wikipedia.org/wiki/C -f json",
		"https://en.wikipedia.org/wiki/D",
	}, "\n")

	runner := &fakeRunner{fail: map[string]error{
		"https://en.wikipedia.org/wiki/C": &core.FetchError{URL: "https://en.wikipedia.org/wiki/C", StatusCode: 404, Err: errors.New("Not Found")},
	}}
	var logs bytes.Buffer
	d := New(runner, logger.New(logger.Options{Output: &logs}))

	sum, err := d.Run(context.Background(), strings.NewReader(input), baseOptions("out"))
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Lines)
	assert.Equal(t, 2, sum.Succeeded)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Malformed)
	assert.False(t, sum.OK())
	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/A.out", "https://en.wikipedia.org/wiki/D.out"}, sum.Files)
	require.Len(t, runner.calls, 3)

	require.Len(t, sum.Errors, 2)
	assert.Equal(t, 5, sum.Errors[0].Line)
	assert.True(t, sum.Errors[0].Malformed)
	assert.Equal(t, 6, sum.Errors[1].Line)
	var fe *core.FetchError
	assert.True(t, errors.As(sum.Errors[1], &fe))

	out := logs.String()
	assert.Contains(t, out, "skipping malformed batch line")
	assert.Contains(t, out, "line=5")
	assert.Contains(t, out, "batch line failed")
	assert.Contains(t, out, "url=https://en.wikipedia.org/wiki/C")
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	sum, err := New(runner, logger.Discard()).Run(ctx, strings.NewReader("https://a.org/wiki/A\n"), baseOptions("out"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Lines)
	assert.Empty(t, runner.calls)
}

func TestRunFile_Missing(t *testing.T) {
	_, err := New(&fakeRunner{}, logger.Discard()).RunFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), baseOptions("out"))
	assert.Error(t, err)
}

// One valid and one malformed line: one file written, one failure logged.
func TestRunFile_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><table class="wikitable">
<tr><th>Site</th><th>Year</th></tr>
<tr><td>Taj Mahal[1]</td><td>1983</td></tr>
</table></body></html>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	batchFile := filepath.Join(dir, "urls.txt")
	content := srv.URL + "/wiki/Sites\n" + srv.URL + "/wiki/Other --format docx\n"
	require.NoError(t, os.WriteFile(batchFile, []byte(content), 0644))

	var logs bytes.Buffer
	log := logger.New(logger.Options{Output: &logs})
	p := pipeline.New(
		fetch.New(fetch.Config{UserAgent: "BatchTest/1.0", Timeout: 5 * time.Second}, log),
		extract.New(),
		clean.New(),
		log,
	)

	outDir := filepath.Join(dir, "out")
	sum, err := New(p, log).RunFile(context.Background(), batchFile, baseOptions(outDir))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Succeeded)
	assert.Equal(t, 1, sum.Malformed)
	require.Equal(t, []string{filepath.Join(outDir, "Sites_table_1.csv")}, sum.Files)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.Equal(t, 1, strings.Count(logs.String(), "level="+slog.LevelError.String()))
}

func TestSummary_Render(t *testing.T) {
	sum := Summary{
		Lines:     3,
		Succeeded: 1,
		Failed:    1,
		Malformed: 1,
		Files:     []string{"a_table_1.csv"},
		Errors: []*LineError{
			{Line: 2, Malformed: true, Err: errors.New("missing URL")},
			{Line: 3, URL: "https://a.org/wiki/B", Err: errors.New("fetch: status 404")},
		},
	}

	var buf bytes.Buffer
	sum.Render(&buf)
	out := buf.String()

	assert.Contains(t, out, "Batch summary")
	assert.Contains(t, out, "(malformed)")
	assert.Contains(t, out, "missing URL")
	assert.Contains(t, out, "https://a.org/wiki/B")
}
