// Package errors provides custom error types for the chat-completion client.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	ErrAuthFailed      = errors.New("authentication failed")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoContent       = errors.New("no content in response")
	ErrTimeout         = errors.New("request timed out")
	ErrNetwork         = errors.New("network error")
)

// ChatError carries the request context shared by all client errors.
type ChatError struct {
	Operation  string
	Endpoint   string
	HTTPStatus int
	Body       string
	Message    string
	Cause      error
}

func (e *ChatError) Error() string {
	var sb strings.Builder
	if e.Operation != "" {
		sb.WriteString(e.Operation)
		sb.WriteString(": ")
	}
	if e.HTTPStatus > 0 {
		fmt.Fprintf(&sb, "[%d] ", e.HTTPStatus)
	}
	switch {
	case e.Message != "":
		sb.WriteString(e.Message)
	case e.Cause != nil:
		sb.WriteString(e.Cause.Error())
	default:
		sb.WriteString("request failed")
	}
	return sb.String()
}

// Unwrap returns the underlying cause
func (e *ChatError) Unwrap() error {
	return e.Cause
}

// WithBody attaches a (truncated) response body for diagnostics
func (e *ChatError) WithBody(body string) *ChatError {
	const maxBody = 2048
	if len(body) > maxBody {
		body = body[:maxBody] + "..."
	}
	e.Body = body
	return e
}

// AuthError represents an authentication failure (bad or missing API key)
type AuthError struct {
	ChatError
}

// NewAuthError creates a new AuthError
func NewAuthError(endpoint, message string, cause error) *AuthError {
	return &AuthError{ChatError{
		Operation:  "authentication failed",
		Endpoint:   endpoint,
		HTTPStatus: 401,
		Message:    message,
		Cause:      cause,
	}}
}

// Is allows comparison with sentinel errors
func (e *AuthError) Is(target error) bool {
	if target == ErrAuthFailed {
		return true
	}
	_, ok := target.(*AuthError)
	return ok
}

// Unwrap returns the underlying cause
func (e *AuthError) Unwrap() error { return e.Cause }

// APIError represents a non-success response from the completion service
type APIError struct {
	ChatError
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string, cause error) *APIError {
	return &APIError{ChatError{
		Operation:  "API error",
		Endpoint:   endpoint,
		HTTPStatus: statusCode,
		Message:    message,
		Cause:      cause,
	}}
}

// Unwrap returns the underlying cause
func (e *APIError) Unwrap() error { return e.Cause }

// RateLimitError represents an HTTP 429 from the service
type RateLimitError struct {
	ChatError
}

// NewRateLimitError creates a new RateLimitError
func NewRateLimitError(endpoint, message string, cause error) *RateLimitError {
	return &RateLimitError{ChatError{
		Operation:  "rate limit exceeded",
		Endpoint:   endpoint,
		HTTPStatus: 429,
		Message:    message,
		Cause:      cause,
	}}
}

// Is allows comparison with sentinel errors
func (e *RateLimitError) Is(target error) bool {
	if target == ErrRateLimited {
		return true
	}
	_, ok := target.(*RateLimitError)
	return ok
}

// Unwrap returns the underlying cause
func (e *RateLimitError) Unwrap() error { return e.Cause }

// NetworkError represents a transport failure before any response arrived
type NetworkError struct {
	ChatError
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{ChatError{
		Operation: operation,
		Endpoint:  endpoint,
		Cause:     cause,
	}}
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// Unwrap returns the underlying cause
func (e *NetworkError) Unwrap() error { return e.Cause }

// TimeoutError represents a request timeout
type TimeoutError struct {
	ChatError
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(endpoint string, cause error) *TimeoutError {
	return &TimeoutError{ChatError{
		Operation: "request timed out",
		Endpoint:  endpoint,
		Cause:     cause,
	}}
}

// Is allows comparison with sentinel errors
func (e *TimeoutError) Is(target error) bool {
	if target == ErrTimeout {
		return true
	}
	_, ok := target.(*TimeoutError)
	return ok
}

// Unwrap returns the underlying cause
func (e *TimeoutError) Unwrap() error { return e.Cause }

// ParseError represents a response that could not be interpreted
type ParseError struct {
	ChatError
	Path string
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{
		ChatError: ChatError{Operation: "parse error", Message: message},
		Path:      path,
	}
}

// NewNoContentError creates a ParseError for a well-formed response that
// carries no reply text. It matches both ErrInvalidResponse and ErrNoContent.
func NewNoContentError(message, path string) *ParseError {
	e := NewParseError(message, path)
	e.Cause = ErrNoContent
	return e
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error { return e.Cause }

// IsAuthError reports whether err is an authentication failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsRateLimitError reports whether err is a rate limit failure
func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsTimeoutError reports whether err is a timeout
func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsParseError reports whether err is a malformed response
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// chatError finds the embedded ChatError anywhere in the chain
func chatError(err error) *ChatError {
	for err != nil {
		switch e := err.(type) {
		case *ChatError:
			return e
		case *AuthError:
			return &e.ChatError
		case *APIError:
			return &e.ChatError
		case *RateLimitError:
			return &e.ChatError
		case *NetworkError:
			return &e.ChatError
		case *TimeoutError:
			return &e.ChatError
		case *ParseError:
			return &e.ChatError
		}
		err = errors.Unwrap(err)
	}
	return nil
}

// GetHTTPStatus returns the HTTP status attached to err, or 0
func GetHTTPStatus(err error) int {
	if ce := chatError(err); ce != nil {
		return ce.HTTPStatus
	}
	return 0
}

// GetEndpoint returns the endpoint attached to err, or ""
func GetEndpoint(err error) string {
	if ce := chatError(err); ce != nil {
		return ce.Endpoint
	}
	return ""
}

// GetResponseBody returns the response body attached to err, or ""
func GetResponseBody(err error) string {
	if ce := chatError(err); ce != nil {
		return ce.Body
	}
	return ""
}
