package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"judgeman/internal/config"
	"judgeman/internal/dom"
	"judgeman/internal/observability"
)

// Page is one loaded judgment page. Close must be called on every path; it
// releases the browser for browser-backed pages.
type Page struct {
	URL      string
	HTML     string
	Document dom.Document

	closeFn func() error
	closed  bool
}

// NewPage wraps a loaded document. release runs once on the first Close and
// may be nil.
func NewPage(pageURL, markup string, doc dom.Document, release func() error) *Page {
	return &Page{URL: pageURL, HTML: markup, Document: doc, closeFn: release}
}

func (p *Page) Close() error {
	if p == nil || p.closed || p.closeFn == nil {
		return nil
	}
	p.closed = true
	return p.closeFn()
}

// Fetcher loads a target and hands back its DOM and markup.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (*Page, error)
}

// New returns the fetcher for cfg.Source.
func New(cfg *config.Config, logger *observability.Logger) (Fetcher, error) {
	switch cfg.Source {
	case config.SourceBrowser:
		return NewBrowserFetcher(cfg, logger), nil
	case config.SourceHTTP:
		return NewHTTPFetcher(cfg, logger), nil
	case config.SourceFile:
		return NewFileFetcher(logger), nil
	default:
		return nil, fmt.Errorf("unknown source: %q", cfg.Source)
	}
}

// HTTPFetcher does one plain GET and parses the response in memory. Pages
// that build their content with JavaScript need the browser fetcher.
type HTTPFetcher struct {
	client *http.Client
	cfg    *config.Config
	logger *observability.Logger
	robots *RobotsChecker
}

func NewHTTPFetcher(cfg *config.Config, logger *observability.Logger) *HTTPFetcher {
	client := &http.Client{
		Timeout: cfg.GetTotalTimeout(),
		Transport: &http.Transport{
			MaxIdleConns:    10,
			IdleConnTimeout: 30 * time.Second,
		},
	}

	return &HTTPFetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
		robots: NewRobotsChecker(client, cfg.HTTP.UserAgent, logger),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (*Page, error) {
	parsedURL, err := validateURL(target)
	if err != nil {
		return nil, err
	}

	if f.cfg.HTTP.RespectRobots {
		if err := f.robots.Check(ctx, parsedURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, newError(ErrCodeInvalidURL, "failed to build request", err)
	}

	req.Header.Set("User-Agent", f.cfg.HTTP.UserAgent)
	req.Header.Set("Accept-Language", f.cfg.HTTP.AcceptLanguage)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, categorizeError(err, "request failed")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("Failed to close response body", "error", err.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(ErrCodeNavigation, fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, target), nil)
	}

	reader := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, newError(ErrCodeRead, "invalid gzip body", err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, newError(ErrCodeRead, "failed to read body", err)
	}

	f.logger.Debug("Response received",
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"bytes", len(body),
	)

	return newStaticPage(resp.Request.URL.String(), string(body))
}

func newStaticPage(pageURL, markup string) (*Page, error) {
	doc, err := dom.ParseReader(strings.NewReader(markup))
	if err != nil {
		return nil, newError(ErrCodeRead, "failed to parse page", err)
	}
	return NewPage(pageURL, markup, doc, nil), nil
}
