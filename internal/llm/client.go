// Package llm talks to an OpenAI-compatible chat completions endpoint to
// summarise a judgment's facts and sketch it as a graph.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const (
	temperature     = 0.2
	maxOutputTokens = 512
)

type Client struct {
	httpClient *http.Client
}

// NewClient wraps httpClient. Pass nil for a client with no timeout of its
// own; the request context still bounds every call.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

type Params struct {
	APIKey  string
	Model   string
	BaseURL string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as a single user message and returns the trimmed
// reply.
func (c *Client) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	if params.APIKey == "" {
		return "", newError(ErrCodeAuthFailed, "missing API key", nil)
	}

	body, err := json.Marshal(chatRequest{
		Model:       params.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", newError(ErrCodeFailed, "marshal request", err)
	}

	endpoint := strings.TrimRight(params.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", newError(ErrCodeFailed, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+params.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(ErrCodeFailed, "request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(ErrCodeFailed, "read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, respBody)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return "", newError(ErrCodeBadOutput, "parse response", err)
	}
	if len(chat.Choices) == 0 {
		return "", newError(ErrCodeBadOutput, "no choices returned", nil)
	}

	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}
