// Package api provides chat-completion clients. Every client implements
// Completer: one prompt in, the reply text out.
package api

import (
	"context"
	"net/http"
	"time"
)

// Completer sends a single prompt to a chat-completion service and returns
// the text of the reply. Implementations do not retry and do not cache.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HTTPDoer is satisfied by *http.Client and is what the OpenAI client
// sends requests through.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// options is shared by all client constructors
type options struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	httpDoer    HTTPDoer
	transport   Doer
}

// ClientOption is a function that configures a client
type ClientOption func(*options)

// WithAPIKey sets the API key handed to the service
func WithAPIKey(key string) ClientOption {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint
func WithBaseURL(url string) ClientOption {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithModel sets the model name sent with every request
func WithModel(model string) ClientOption {
	return func(o *options) {
		o.model = model
	}
}

// WithTemperature sets the sampling temperature (0 keeps the service default)
func WithTemperature(t float64) ClientOption {
	return func(o *options) {
		o.temperature = t
	}
}

// WithMaxTokens caps the reply length (0 keeps the service default)
func WithMaxTokens(n int) ClientOption {
	return func(o *options) {
		o.maxTokens = n
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPDoer replaces the net/http client used by the OpenAI client
func WithHTTPDoer(d HTTPDoer) ClientOption {
	return func(o *options) {
		o.httpDoer = d
	}
}

// WithTransport replaces the TLS client used by the generic HTTP client
func WithTransport(d Doer) ClientOption {
	return func(o *options) {
		o.transport = d
	}
}

func applyOptions(opts []ClientOption) options {
	o := options{model: DefaultModel}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
