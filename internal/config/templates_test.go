package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/chatbot/internal/prompt"
)

func TestDefaultTemplates(t *testing.T) {
	templates := DefaultTemplates()
	if len(templates) == 0 {
		t.Fatal("DefaultTemplates() returned empty list")
	}

	if templates[0].Name != DefaultTemplateName {
		t.Errorf("first template = %s, want %s", templates[0].Name, DefaultTemplateName)
	}
	if templates[0].Text != "You are a friendly chatbot. Respond to: {message}" {
		t.Errorf("friendly template text = %q", templates[0].Text)
	}

	for _, tmpl := range templates {
		if err := ValidateTemplate(tmpl); err != nil {
			t.Errorf("default template %s is invalid: %v", tmpl.Name, err)
		}
	}
}

func TestLoadTemplates_NoFile(t *testing.T) {
	useTempConfigDir(t)

	tc, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates() returned error: %v", err)
	}
	if tc.DefaultTemplate != DefaultTemplateName {
		t.Errorf("DefaultTemplate = %s", tc.DefaultTemplate)
	}
	if len(tc.Templates) != len(DefaultTemplates()) {
		t.Errorf("len(Templates) = %d, want %d", len(tc.Templates), len(DefaultTemplates()))
	}
}

func TestLoadTemplates_MergesCustom(t *testing.T) {
	dir := useTempConfigDir(t)

	data := `{"templates":[{"name":"friendly","description":"override","text":"Hi! {message}"},{"name":"mine","text":"Mine: {message}"}],"default_template":"mine"}`
	if err := os.WriteFile(filepath.Join(dir, "templates.json"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	tc, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates() returned error: %v", err)
	}
	if len(tc.Templates) != len(DefaultTemplates())+1 {
		t.Errorf("len(Templates) = %d", len(tc.Templates))
	}
	if tc.Templates[0].Text != "Hi! {message}" {
		t.Errorf("friendly override lost: %q", tc.Templates[0].Text)
	}

	def, err := GetDefaultTemplate()
	if err != nil {
		t.Fatalf("GetDefaultTemplate() returned error: %v", err)
	}
	if def.Name != "mine" {
		t.Errorf("GetDefaultTemplate() = %s, want mine", def.Name)
	}
}

func TestTemplateCRUD(t *testing.T) {
	useTempConfigDir(t)

	tmpl := PromptTemplate{Name: "haiku", Description: "Replies in haiku", Text: "Reply as a haiku: {message}"}
	if err := AddTemplate(tmpl); err != nil {
		t.Fatalf("AddTemplate() returned error: %v", err)
	}
	if err := AddTemplate(tmpl); err == nil {
		t.Error("AddTemplate() should reject duplicates")
	}

	got, err := GetTemplate("haiku")
	if err != nil {
		t.Fatalf("GetTemplate() returned error: %v", err)
	}
	if got.Text != tmpl.Text {
		t.Errorf("Text = %q", got.Text)
	}

	tmpl.Text = "Three lines only: {message}"
	if err := UpdateTemplate(tmpl); err != nil {
		t.Fatalf("UpdateTemplate() returned error: %v", err)
	}
	got, _ = GetTemplate("haiku")
	if got.Text != "Three lines only: {message}" {
		t.Errorf("UpdateTemplate() not persisted: %q", got.Text)
	}

	if err := SetDefaultTemplate("haiku"); err != nil {
		t.Fatalf("SetDefaultTemplate() returned error: %v", err)
	}
	if err := DeleteTemplate("haiku"); err != nil {
		t.Fatalf("DeleteTemplate() returned error: %v", err)
	}
	if _, err := GetTemplate("haiku"); err == nil {
		t.Error("GetTemplate() should fail after delete")
	}

	def, err := GetDefaultTemplate()
	if err != nil {
		t.Fatalf("GetDefaultTemplate() returned error: %v", err)
	}
	if def.Name != DefaultTemplateName {
		t.Errorf("default should reset to %s after delete, got %s", DefaultTemplateName, def.Name)
	}
}

func TestTemplateCRUD_Errors(t *testing.T) {
	useTempConfigDir(t)

	for _, builtin := range DefaultTemplates() {
		if err := DeleteTemplate(builtin.Name); err == nil {
			t.Errorf("DeleteTemplate(%q) should refuse a built-in template", builtin.Name)
		}
		if _, err := GetTemplate(builtin.Name); err != nil {
			t.Errorf("GetTemplate(%q) after refused delete: %v", builtin.Name, err)
		}
	}
	if err := DeleteTemplate("missing"); err == nil {
		t.Error("DeleteTemplate() should fail for unknown template")
	}
	if err := UpdateTemplate(PromptTemplate{Name: "missing", Text: "{message}"}); err == nil {
		t.Error("UpdateTemplate() should fail for unknown template")
	}
	if err := SetDefaultTemplate("missing"); err == nil {
		t.Error("SetDefaultTemplate() should fail for unknown template")
	}
}

func TestIsBuiltinTemplate(t *testing.T) {
	for _, name := range []string{"friendly", "concise", "tutor", "pirate"} {
		if !IsBuiltinTemplate(name) {
			t.Errorf("IsBuiltinTemplate(%q) = false, want true", name)
		}
	}
	if IsBuiltinTemplate("haiku") {
		t.Error("IsBuiltinTemplate(haiku) = true, want false")
	}
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    PromptTemplate
		wantErr string
	}{
		{"valid", PromptTemplate{Name: "ok", Text: "Say: {message}"}, ""},
		{"missing name", PromptTemplate{Text: "{message}"}, "name is required"},
		{"bad name", PromptTemplate{Name: "has space", Text: "{message}"}, "alphanumeric"},
		{"long name", PromptTemplate{Name: strings.Repeat("a", MaxNameLength+1), Text: "{message}"}, "name too long"},
		{"long description", PromptTemplate{Name: "d", Description: strings.Repeat("d", MaxDescriptionLength+1), Text: "{message}"}, "description too long"},
		{"no placeholder", PromptTemplate{Name: "np", Text: "Hello there"}, "placeholder"},
		{"two placeholders", PromptTemplate{Name: "tp", Text: "{message}{message}"}, "only once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplate(tt.tmpl)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateTemplate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateTemplate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveTemplate(t *testing.T) {
	dir := useTempConfigDir(t)

	tmpl, err := ResolveTemplate("")
	if err != nil {
		t.Fatalf("ResolveTemplate(\"\") returned error: %v", err)
	}
	if got := tmpl.Build("Hello"); got != "You are a friendly chatbot. Respond to: Hello" {
		t.Errorf("Build() = %q", got)
	}

	if _, err := ResolveTemplate("nope"); err == nil {
		t.Error("ResolveTemplate() should fail for unknown template")
	}

	// A hand-edited file can bypass ValidateTemplate; resolving must fail fast.
	data := `{"templates":[{"name":"broken","text":"no placeholder"}]}`
	if err := os.WriteFile(filepath.Join(dir, "templates.json"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = ResolveTemplate("broken")
	if !errors.Is(err, prompt.ErrMissingPlaceholder) {
		t.Errorf("ResolveTemplate(broken) = %v, want ErrMissingPlaceholder", err)
	}
}
