package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

const (
	ErrCodeInvalidURL       = "INVALID_URL"
	ErrCodeNavigation       = "NAVIGATION_FAILED"
	ErrCodeTimeout          = "NAVIGATION_TIMEOUT"
	ErrCodeBrowser          = "BROWSER_FAILED"
	ErrCodeRobotsDisallowed = "ROBOTS_DISALLOWED"
	ErrCodeRead             = "READ_FAILED"
)

// Error is returned for every failure that aborts a fetch.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// IsCode reports whether err is a fetch Error with the given code.
func IsCode(err error, code string) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == code
}

func categorizeError(err error, msg string) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newError(ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return newError(ErrCodeTimeout, "navigation canceled", err)
	default:
		return newError(ErrCodeNavigation, msg, err)
	}
}

// validateURL accepts absolute http(s) URLs only.
func validateURL(target string) (*url.URL, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, newError(ErrCodeInvalidURL, "invalid URL", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, newError(ErrCodeInvalidURL, fmt.Sprintf("unsupported scheme %q in %s", parsed.Scheme, target), nil)
	}
	if parsed.Host == "" {
		return nil, newError(ErrCodeInvalidURL, fmt.Sprintf("missing host in %s", target), nil)
	}
	return parsed, nil
}
