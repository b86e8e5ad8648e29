package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeFailed      = "LLM_FAILED"
	ErrCodeAuthFailed  = "LLM_AUTH_FAILED"
	ErrCodeRateLimited = "LLM_RATE_LIMITED"
	ErrCodeBadOutput   = "LLM_BAD_OUTPUT"
)

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

// IsCode reports whether err is an llm Error with the given code.
func IsCode(err error, code string) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == code
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Gemini's compatibility layer wraps errors in a one-element array.
type chatErrorList []chatErrorResponse

// classifyStatus maps a non-200 response to an Error.
func classifyStatus(statusCode int, body []byte) *Error {
	msg := fmt.Sprintf("provider returned %d", statusCode)
	if detail := errorMessage(body); detail != "" {
		msg += ": " + detail
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(ErrCodeAuthFailed, msg, nil)
	case http.StatusTooManyRequests:
		return newError(ErrCodeRateLimited, msg, nil)
	default:
		return newError(ErrCodeFailed, msg, nil)
	}
}

func errorMessage(body []byte) string {
	var single chatErrorResponse
	if err := json.Unmarshal(body, &single); err == nil && single.Error.Message != "" {
		return single.Error.Message
	}
	var list chatErrorList
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].Error.Message
	}
	return ""
}
