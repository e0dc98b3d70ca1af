package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/diogo/chatbot/internal/api"
	apierrors "github.com/diogo/chatbot/internal/errors"
	"github.com/diogo/chatbot/internal/prompt"
)

func TestService_Respond(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		reply      string
		wantPrompt string
	}{
		{
			name:       "greeting",
			message:    "Hello",
			reply:      "Hi there!",
			wantPrompt: "You are a friendly chatbot. Respond to: Hello",
		},
		{
			name:       "empty message",
			message:    "",
			reply:      "Did you mean to say something?",
			wantPrompt: "You are a friendly chatbot. Respond to: ",
		},
		{
			name:       "empty reply passes through",
			message:    "say nothing",
			reply:      "",
			wantPrompt: "You are a friendly chatbot. Respond to: say nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &api.MockClient{Response: tt.reply}
			svc := NewService(mock, nil)

			got, err := svc.Respond(context.Background(), tt.message)
			if err != nil {
				t.Fatalf("Respond() error = %v", err)
			}
			if got != tt.reply {
				t.Errorf("Respond() = %q, want %q", got, tt.reply)
			}
			if mock.LastPrompt() != tt.wantPrompt {
				t.Errorf("prompt = %q, want %q", mock.LastPrompt(), tt.wantPrompt)
			}
		})
	}
}

func TestService_CustomTemplate(t *testing.T) {
	mock := &api.MockClient{Response: "Arr"}
	svc := NewService(mock, prompt.MustNew("Answer like a pirate: {message}"))

	if _, err := svc.Respond(context.Background(), "where is the gold?"); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if mock.LastPrompt() != "Answer like a pirate: where is the gold?" {
		t.Errorf("prompt = %q", mock.LastPrompt())
	}
	if svc.tmpl.Text() != "Answer like a pirate: {message}" {
		t.Errorf("template = %q", svc.tmpl.Text())
	}
}

func TestService_NoMemoryBetweenCalls(t *testing.T) {
	mock := &api.MockClient{Responses: []string{"one", "two"}}
	svc := NewService(mock, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.Respond(context.Background(), "same"); err != nil {
			t.Fatalf("Respond() error = %v", err)
		}
	}

	calls := mock.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0] != calls[1] {
		t.Errorf("identical messages should produce identical prompts: %q vs %q", calls[0], calls[1])
	}
}

func TestService_ErrorPropagates(t *testing.T) {
	cause := apierrors.NewAuthError("https://api.openai.com/v1/chat/completions", "invalid key", nil)
	mock := &api.MockClient{Err: cause}
	svc := NewService(mock, nil)

	got, err := svc.Respond(context.Background(), "Hello")
	if got != "" {
		t.Errorf("Respond() = %q, want empty", got)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Respond() error = %v, want %v", err, cause)
	}
	if !apierrors.IsAuthError(err) {
		t.Error("error classification should survive")
	}
}

func TestService_PassesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	var seen any
	mock := &api.MockClient{
		CompleteFunc: func(ctx context.Context, _ string) (string, error) {
			seen = ctx.Value(ctxKey{})
			return "ok", nil
		},
	}

	if _, err := NewService(mock, nil).Respond(ctx, "hi"); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if seen != "marker" {
		t.Error("context was not passed to the client")
	}
}
