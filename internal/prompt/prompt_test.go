package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault_Build(t *testing.T) {
	got := Default().Build("Hello")
	want := "You are a friendly chatbot. Respond to: Hello"
	if got != want {
		t.Errorf("Build(%q) = %q, want %q", "Hello", got, want)
	}
}

func TestDefault_BuildEmpty(t *testing.T) {
	got := Default().Build("")
	want := "You are a friendly chatbot. Respond to: "
	if got != want {
		t.Errorf("Build(\"\") = %q, want %q", got, want)
	}
}

func TestBuild_SubstitutesExactlyOnce(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"plain", "what's the weather?"},
		{"unicode", "olá, tudo bem? 👋"},
		{"multiline", "line one\nline two"},
		{"contains placeholder", "echo {message} back"},
		{"braces", "{}{{}}"},
		{"exit lookalike", "exit please"},
	}

	tmpl := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tmpl.Build(tt.message)
			want := strings.Replace(DefaultText, Placeholder, tt.message, 1)
			if got != want {
				t.Errorf("Build(%q) = %q, want %q", tt.message, got, want)
			}
			if !strings.HasPrefix(got, "You are a friendly chatbot. Respond to: ") {
				t.Errorf("Build(%q) lost the instruction prefix: %q", tt.message, got)
			}
		})
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"valid", "Answer briefly: {message}", nil},
		{"placeholder only", "{message}", nil},
		{"placeholder in middle", "Q: {message}\nA:", nil},
		{"missing", "You are a friendly chatbot.", ErrMissingPlaceholder},
		{"malformed", "Respond to: {msg}", ErrMissingPlaceholder},
		{"empty", "", ErrMissingPlaceholder},
		{"duplicate", "{message} and again {message}", ErrDuplicatePlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := New(tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New(%q) error = %v, want %v", tt.text, err, tt.wantErr)
			}
			if tt.wantErr == nil && tmpl.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", tmpl.Text(), tt.text)
			}
		})
	}
}

func TestBuild_PlaceholderPositions(t *testing.T) {
	tmpl, err := New("{message} <- that was said")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := tmpl.Build("hi"); got != "hi <- that was said" {
		t.Errorf("Build() = %q", got)
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustNew should panic for a template without placeholder")
		}
	}()
	MustNew("no placeholder here")
}
