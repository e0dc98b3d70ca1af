package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	apierrors "github.com/diogo/chatbot/internal/errors"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

// OpenAIClient talks to the OpenAI Chat Completions API, or any server that
// speaks the same protocol when a base URL is set.
type OpenAIClient struct {
	client      *openai.Client
	endpoint    string
	model       string
	temperature float64
	maxTokens   int
}

var _ Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client once; it is safe to reuse for every turn.
func NewOpenAIClient(opts ...ClientOption) *OpenAIClient {
	o := applyOptions(opts)

	cfg := openai.DefaultConfig(o.apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = strings.TrimRight(o.baseURL, "/")
	}
	switch {
	case o.httpDoer != nil:
		cfg.HTTPClient = o.httpDoer
	case o.timeout > 0:
		cfg.HTTPClient = &http.Client{Timeout: o.timeout}
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		endpoint:    cfg.BaseURL + "/chat/completions",
		model:       o.model,
		temperature: o.temperature,
		maxTokens:   o.maxTokens,
	}
}

// Model returns the model sent with each request
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the content
// of the first choice unchanged.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(c.temperature),
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.translateError(err)
	}

	log.Debug().
		Str("provider", "openai").
		Str("model", resp.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completion received")

	if len(resp.Choices) == 0 {
		return "", apierrors.NewNoContentError("no choices in chat completion response", "choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// translateError classifies a go-openai error while keeping it as the cause
func (c *OpenAIClient) translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, c.endpoint, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(reqErr.HTTPStatusCode, c.endpoint, "", err)
	}

	return transportError("chat completion", c.endpoint, err)
}

// statusError maps an HTTP status to the matching typed error
func statusError(status int, endpoint, message string, cause error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		e := apierrors.NewAuthError(endpoint, message, cause)
		e.HTTPStatus = status
		return e
	case http.StatusTooManyRequests:
		return apierrors.NewRateLimitError(endpoint, message, cause)
	default:
		return apierrors.NewAPIError(status, endpoint, message, cause)
	}
}

// transportError classifies a failure that happened before a response
func transportError(operation, endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(endpoint, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(endpoint, err)
	}
	return apierrors.NewNetworkError(operation, endpoint, err)
}
