package api_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diogo/chatbot/internal/api"
)

func TestMockClient(t *testing.T) {
	mock := &api.MockClient{Responses: []string{"first", "second"}, Response: "fallback"}

	// Verify interface compliance
	var client api.Completer = mock

	for _, want := range []string{"first", "second", "fallback"} {
		got, err := client.Complete(context.Background(), "Hello")
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if got != want {
			t.Errorf("Complete() = %q, want %q", got, want)
		}
	}

	if len(mock.Calls()) != 3 {
		t.Errorf("Expected 3 calls, got %d", len(mock.Calls()))
	}
	if mock.LastPrompt() != "Hello" {
		t.Errorf("Expected prompt 'Hello', got '%s'", mock.LastPrompt())
	}
}

func TestMockClient_Error(t *testing.T) {
	boom := errors.New("boom")
	mock := &api.MockClient{Err: boom, Response: "unused"}

	_, err := mock.Complete(context.Background(), "x")
	if !errors.Is(err, boom) {
		t.Errorf("Complete() error = %v, want %v", err, boom)
	}
	if mock.LastPrompt() != "x" {
		t.Error("failed calls should still be recorded")
	}
}

func TestMockClient_CompleteFunc(t *testing.T) {
	mock := &api.MockClient{
		CompleteFunc: func(_ context.Context, prompt string) (string, error) {
			return "echo: " + prompt, nil
		},
	}

	got, _ := mock.Complete(context.Background(), "hi")
	if got != "echo: hi" {
		t.Errorf("Complete() = %q", got)
	}
}
