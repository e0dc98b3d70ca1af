package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/diogo/chatbot/internal/config"
	apierrors "github.com/diogo/chatbot/internal/errors"
)

// DefaultBodyTemplate is sent when no body template is configured
const DefaultBodyTemplate = `{"model":{{json .Model}},"prompt":{{json .Prompt}}}`

// maxResponseSize bounds how much of a reply body is read
const maxResponseSize = 4 << 20

// fallbackPaths are tried in order when no response path is configured
var fallbackPaths = []string{
	"choices.0.message.content",
	"choices.0.text",
	"output_text",
	"response",
	"text",
}

// Doer is satisfied by tls_client.HttpClient
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// bodyData is what the body template is executed against
type bodyData struct {
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
	APIKey      string
}

// HTTPClient posts prompts to an arbitrary JSON endpoint and pulls the
// reply out of the response with a gjson path.
type HTTPClient struct {
	transport    Doer
	url          string
	method       string
	headers      map[string]string
	body         *template.Template
	responsePath string
	apiKey       string
	model        string
	temperature  float64
	maxTokens    int
}

var _ Completer = (*HTTPClient)(nil)

// NewHTTPClient validates the provider settings and builds the transport.
func NewHTTPClient(pc config.HTTPProviderConfig, opts ...ClientOption) (*HTTPClient, error) {
	o := applyOptions(opts)

	if pc.URL == "" {
		return nil, fmt.Errorf("http provider requires a url")
	}

	method := strings.ToUpper(pc.Method)
	if method == "" {
		method = http.MethodPost
	}

	bodyText := pc.BodyTemplate
	if bodyText == "" {
		bodyText = DefaultBodyTemplate
	}
	tmpl, err := template.New("body").Funcs(template.FuncMap{"json": jsonValue}).Parse(bodyText)
	if err != nil {
		return nil, fmt.Errorf("invalid body template: %w", err)
	}

	transport := o.transport
	if transport == nil {
		transport, err = newTransport(o, pc.Impersonate)
		if err != nil {
			return nil, err
		}
	}

	return &HTTPClient{
		transport:    transport,
		url:          pc.URL,
		method:       method,
		headers:      pc.Headers,
		body:         tmpl,
		responsePath: pc.ResponsePath,
		apiKey:       o.apiKey,
		model:        o.model,
		temperature:  o.temperature,
		maxTokens:    o.maxTokens,
	}, nil
}

// newTransport returns a browser-fingerprinted tls-client when impersonate
// is set and a plain fhttp client with a stock Go handshake otherwise.
func newTransport(o options, impersonate bool) (Doer, error) {
	timeout := 300 * time.Second
	if o.timeout > 0 {
		timeout = o.timeout
	}

	if !impersonate {
		return &http.Client{Timeout: timeout}, nil
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(),
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithClientProfile(profiles.DefaultClientProfile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return client, nil
}

// jsonValue renders v as a JSON literal inside the body template
func jsonValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Complete renders the request body, sends it and extracts the reply text.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) (string, error) {
	var body bytes.Buffer
	err := c.body.Execute(&body, bodyData{
		Prompt:      prompt,
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		APIKey:      c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for key, value := range c.headers {
		req.Header.Set(key, strings.ReplaceAll(value, "{{api_key}}", c.apiKey))
	}

	log.Debug().
		Str("provider", "http").
		Str("request_id", requestID).
		Str("url", c.url).
		Int("body_len", body.Len()).
		Msg("sending completion request")

	resp, err := c.transport.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return "", transportError("http completion", c.url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", apierrors.NewNetworkError("read response", c.url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := gjson.GetBytes(data, "error.message").String()
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return "", withBody(statusError(resp.StatusCode, c.url, message, nil), string(data))
	}

	return c.extract(data)
}

// extract pulls the reply out of a successful response body
func (c *HTTPClient) extract(data []byte) (string, error) {
	if c.responsePath != "" {
		if !gjson.ValidBytes(data) {
			return "", apierrors.NewParseError("response is not valid JSON", c.responsePath)
		}
		result := gjson.GetBytes(data, c.responsePath)
		if !result.Exists() {
			return "", apierrors.NewParseError("no value at response path", c.responsePath)
		}
		return result.String(), nil
	}

	if !gjson.ValidBytes(data) {
		return strings.TrimSpace(string(data)), nil
	}

	for _, path := range fallbackPaths {
		if result := gjson.GetBytes(data, path); result.Exists() {
			return result.String(), nil
		}
	}

	if root := gjson.ParseBytes(data); root.Type == gjson.String {
		return root.String(), nil
	}

	return "", apierrors.NewNoContentError("no reply text found in response", strings.Join(fallbackPaths, "|"))
}

// withBody attaches the response body to any typed client error
func withBody(err error, body string) error {
	switch e := err.(type) {
	case *apierrors.AuthError:
		e.WithBody(body)
	case *apierrors.RateLimitError:
		e.WithBody(body)
	case *apierrors.APIError:
		e.WithBody(body)
	}
	return err
}
