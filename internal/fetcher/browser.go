package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"judgeman/internal/config"
	"judgeman/internal/dom"
	"judgeman/internal/observability"
)

// documentMarkupJS serializes the whole document, doctype included. Page.HTML
// returns only the <html> element.
const documentMarkupJS = `() => (document.doctype ? new XMLSerializer().serializeToString(document.doctype) + "\n" : "") + document.documentElement.outerHTML`

// BrowserFetcher loads the page in headless Chrome and keeps the tab open so
// the extractor can query the live DOM.
type BrowserFetcher struct {
	cfg    *config.Config
	logger *observability.Logger
	robots *RobotsChecker
}

func NewBrowserFetcher(cfg *config.Config, logger *observability.Logger) *BrowserFetcher {
	client := &http.Client{Timeout: cfg.GetTotalTimeout()}
	return &BrowserFetcher{
		cfg:    cfg,
		logger: logger,
		robots: NewRobotsChecker(client, cfg.HTTP.UserAgent, logger),
	}
}

// Fetch navigates once and returns after DOMContentLoaded. Sub-resources may
// still be loading. On error everything it started is already torn down.
func (f *BrowserFetcher) Fetch(ctx context.Context, target string) (*Page, error) {
	parsedURL, err := validateURL(target)
	if err != nil {
		return nil, err
	}

	if f.cfg.HTTP.RespectRobots {
		if err := f.robots.Check(ctx, parsedURL); err != nil {
			return nil, err
		}
	}

	l := launcher.New().
		Context(ctx).
		Headless(f.cfg.Rod.Headless).
		NoSandbox(f.cfg.Rod.NoSandbox)
	if f.cfg.Rod.ChromePath != "" {
		l = l.Bin(f.cfg.Rod.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, newError(ErrCodeBrowser, "failed to launch browser", err)
	}
	f.logger.Debug("Browser launched", "control_url", controlURL)

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, newError(ErrCodeBrowser, "failed to connect to browser", err)
	}

	teardown := func() error {
		closeErr := browser.Close()
		l.Kill()
		l.Cleanup()
		return closeErr
	}

	page, err := f.navigate(ctx, browser, target)
	if err != nil {
		if closeErr := teardown(); closeErr != nil {
			f.logger.Warn("Failed to close browser", "error", closeErr.Error())
		}
		return nil, err
	}

	markup, err := serializeDocument(page)
	if err != nil {
		if closeErr := teardown(); closeErr != nil {
			f.logger.Warn("Failed to close browser", "error", closeErr.Error())
		}
		return nil, newError(ErrCodeRead, "failed to serialize page", err)
	}

	finalURL := target
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return NewPage(finalURL, markup, dom.NewPageDocument(page), teardown), nil
}

func (f *BrowserFetcher) navigate(ctx context.Context, browser *rod.Browser, target string) (*rod.Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, newError(ErrCodeBrowser, "failed to open page", err)
	}

	if f.cfg.Rod.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			f.logger.Warn("Stealth injection failed, continuing without it", "error", err.Error())
		}
	}

	if f.cfg.HTTP.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      f.cfg.HTTP.UserAgent,
			AcceptLanguage: f.cfg.HTTP.AcceptLanguage,
		}); err != nil {
			f.logger.Warn("Failed to set user agent", "error", err.Error())
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, f.cfg.GetNavigateTimeout())
	defer cancel()
	navPage := page.Context(navCtx)

	// must be registered before Navigate or the event can be missed
	waitDOM := navPage.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)

	f.logger.Info("Navigating", "url", target, "timeout", f.cfg.GetNavigateTimeout().String())
	if err := navPage.Navigate(target); err != nil {
		return nil, categorizeError(err, fmt.Sprintf("navigation to %s failed", target))
	}

	waitDOM()
	if err := navCtx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, newError(ErrCodeTimeout, fmt.Sprintf("DOMContentLoaded not reached within %s", f.cfg.GetNavigateTimeout()), err)
		}
		return nil, categorizeError(err, "navigation interrupted")
	}

	return page, nil
}

func serializeDocument(page *rod.Page) (string, error) {
	result, err := page.Eval(documentMarkupJS)
	if err != nil {
		return "", err
	}
	return result.Value.Str(), nil
}
