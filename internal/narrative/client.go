package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrUnavailable covers transport failures and non-2xx responses
	// from the language-model endpoint.
	ErrUnavailable = errors.New("narrative service unavailable")
	// ErrMalformed covers empty or unparsable completions.
	ErrMalformed = errors.New("narrative response malformed")
)

// Client produces a completion for a prompt. jsonOutput asks the model
// to respond with a JSON object.
type Client interface {
	Complete(ctx context.Context, prompt string, jsonOutput bool) (string, error)
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// HTTPClient talks to an OpenAI-compatible chat-completions endpoint.
type HTTPClient struct {
	http  *resty.Client
	model string
	log   zerolog.Logger
}

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewHTTPClient(cfg ClientConfig, log zerolog.Logger) *HTTPClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &HTTPClient{http: client, model: cfg.Model, log: log}
}

func (c *HTTPClient) Complete(ctx context.Context, prompt string, jsonOutput bool) (string, error) {
	req := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	}
	if jsonOutput {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		c.log.Error().Err(err).Msg("narrative request failed")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		c.log.Error().
			Int("status", resp.StatusCode()).
			Msg("narrative endpoint returned error")
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	if out.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformed)
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrMalformed)
	}
	return content, nil
}
