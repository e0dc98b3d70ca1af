package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	apierrors "github.com/diogo/chatbot/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	const endpoint = "https://api.example.com/v1/chat/completions"

	tests := []struct {
		name    string
		err     error
		want    []string
		notWant []string
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: []string{"✗ Error: boom"},
			notWant: []string{
				"HTTP Status", "Endpoint", "Hint",
			},
		},
		{
			name: "auth error",
			err:  apierrors.NewAuthError(endpoint, "invalid api key", nil),
			want: []string{"HTTP Status: 401", "Endpoint: " + endpoint, "CHATBOT_API_KEY"},
		},
		{
			name: "rate limit",
			err:  apierrors.NewRateLimitError(endpoint, "slow down", nil),
			want: []string{"HTTP Status: 429", "rate limit"},
		},
		{
			name: "network",
			err:  apierrors.NewNetworkError("complete", endpoint, errors.New("connection refused")),
			want: []string{"Endpoint: " + endpoint, "--base-url"},
		},
		{
			name: "timeout",
			err:  apierrors.NewTimeoutError(endpoint, nil),
			want: []string{"timed out"},
		},
		{
			name: "parse",
			err:  apierrors.NewParseError("reply not found", "data.reply"),
			want: []string{"http.response_path"},
		},
		{
			name:    "body replaces hint",
			err:     withBody(apierrors.NewAPIError(500, endpoint, "server error", nil), "upstream\nexploded"),
			want:    []string{"HTTP Status: 500", "upstream", "  exploded"},
			notWant: []string{"Hint"},
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("failed to get response: %w", apierrors.NewAuthError(endpoint, "invalid api key", nil)),
			want: []string{"failed to get response", "HTTP Status: 401"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Error")
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in:\n%s", want, out)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("unexpected %q in:\n%s", notWant, out)
				}
			}
		})
	}
}

func withBody(e *apierrors.APIError, body string) error {
	e.WithBody(body)
	return e
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if isTerminal(nil) {
		t.Error("nil is not a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if isTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestGetTerminalWidth_Default(t *testing.T) {
	if got := getTerminalWidth(&bytes.Buffer{}); got != 80 {
		t.Errorf("width = %d, want 80", got)
	}
}

func TestSpinner(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		s := newSpinner(&buf, "Thinking")
		s.start()
		s.stopWithSuccess("Done")

		out := buf.String()
		if !strings.Contains(out, "Thinking") {
			t.Errorf("spinner never rendered its message: %q", out)
		}
		if !strings.Contains(out, "\033[?25l") || !strings.Contains(out, "\033[?25h") {
			t.Error("cursor should be restored")
		}
		if !strings.HasSuffix(out, "Done\n") {
			t.Errorf("output should end with the success message: %q", out)
		}
	})

	t.Run("error stops twice safely", func(t *testing.T) {
		var buf bytes.Buffer
		s := newSpinner(&buf, "Thinking")
		s.start()
		s.stopWithError()
		s.stopWithError()

		if strings.Contains(buf.String(), "✓") {
			t.Error("error stop should not print a checkmark")
		}
	})
}
