package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"

	"judgeman/internal/observability"
)

// RobotsChecker asks a host's robots.txt whether a URL may be fetched.
type RobotsChecker struct {
	client    *http.Client
	userAgent string
	logger    *observability.Logger
}

func NewRobotsChecker(client *http.Client, userAgent string, logger *observability.Logger) *RobotsChecker {
	return &RobotsChecker{client: client, userAgent: userAgent, logger: logger}
}

// Check returns a ROBOTS_DISALLOWED error when the URL is disallowed. An
// unreachable or missing robots.txt allows everything.
func (rc *RobotsChecker) Check(ctx context.Context, target *url.URL) error {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", target.Scheme, target.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.client.Do(req)
	if err != nil {
		rc.logger.Warn("robots.txt unreachable, assuming allowed", "url", robotsURL, "error", err.Error())
		return nil
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			rc.logger.Warn("Failed to close response body", "error", err.Error())
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		rc.logger.Warn("robots.txt unparsable, assuming allowed", "url", robotsURL, "error", err.Error())
		return nil
	}

	path := target.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !robots.TestAgent(path, rc.userAgent) {
		return newError(ErrCodeRobotsDisallowed, fmt.Sprintf("%s disallowed by robots.txt", target), nil)
	}
	return nil
}
