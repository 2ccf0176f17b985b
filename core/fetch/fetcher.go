// Package fetch implements the Fetcher interface.
// It performs a single HTTP GET per page with an identifying User-Agent.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/gocolly/colly/v2"
)

const defaultTimeout = 15 * time.Second

// Config holds configuration for the fetcher.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int // bytes; 0 means unlimited
}

// HTTPFetcher fetches pages with a fresh colly collector per request.
type HTTPFetcher struct {
	config Config
	log    *slog.Logger
}

// New creates an HTTPFetcher.
func New(cfg Config, log *slog.Logger) *HTTPFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &HTTPFetcher{config: cfg, log: log}
}

// Fetch retrieves the HTML content of the given URL. Transport failures and
// non-success statuses and bodies over MaxBodySize are reported as
// *core.FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	target := NormalizeURL(rawURL)

	// colly truncates at the limit without an error. Reading one byte more
	// tells a page that exactly fits from one that was cut off.
	limit := f.config.MaxBodySize
	if limit > 0 {
		limit++
	}
	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
		colly.StdlibContext(ctx),
		colly.MaxBodySize(limit),
	)
	c.SetRequestTimeout(f.config.Timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})

	result := &core.FetchResult{URL: target}
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		if f.config.MaxBodySize > 0 && len(r.Body) > f.config.MaxBodySize {
			fetchErr = fmt.Errorf("response body exceeds max_body_size (%s)",
				humanize.Bytes(uint64(f.config.MaxBodySize)))
			return
		}
		result.HTML = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = err
	})

	f.log.Debug("fetching page", "url", target, "user_agent", f.config.UserAgent)
	if err := c.Visit(target); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		return nil, &core.FetchError{URL: target, StatusCode: result.StatusCode, Err: fetchErr}
	}
	if result.HTML == "" {
		return nil, &core.FetchError{URL: target, StatusCode: result.StatusCode, Err: errors.New("empty response body")}
	}

	f.log.Info("fetched page",
		"url", target,
		"status", result.StatusCode,
		"size", humanize.Bytes(uint64(len(result.HTML))))
	return result, nil
}
