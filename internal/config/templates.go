package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diogo/chatbot/internal/prompt"
)

// DefaultTemplateName is the built-in template that cannot be deleted
const DefaultTemplateName = "friendly"

// PromptTemplate is a named instruction template containing {message}
type PromptTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Text        string `json:"text"`
}

// TemplateConfig stores all prompt templates
type TemplateConfig struct {
	Templates       []PromptTemplate `json:"templates"`
	DefaultTemplate string           `json:"default_template,omitempty"`
}

// DefaultTemplates returns pre-configured templates
func DefaultTemplates() []PromptTemplate {
	return []PromptTemplate{
		{
			Name:        DefaultTemplateName,
			Description: "Friendly general-purpose chatbot",
			Text:        prompt.DefaultText,
		},
		{
			Name:        "concise",
			Description: "Short, direct answers",
			Text:        "You are a concise assistant. Answer in at most three sentences.\n\n{message}",
		},
		{
			Name:        "tutor",
			Description: "Patient explanations with examples",
			Text: `You are a patient and thorough tutor. When explaining:
- Break down complex topics into simple parts
- Use analogies and examples
- Adapt explanations to the learner's level

Question: {message}`,
		},
		{
			Name:        "pirate",
			Description: "Answers like a pirate",
			Text:        "You are a cheerful pirate chatbot. Stay in character. Respond to: {message}",
		},
	}
}

// GetTemplatesPath returns the path to the templates file
func GetTemplatesPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "templates.json"), nil
}

// LoadTemplates loads the template catalog, merged with the defaults
func LoadTemplates() (*TemplateConfig, error) {
	path, err := GetTemplatesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &TemplateConfig{
				Templates:       DefaultTemplates(),
				DefaultTemplate: DefaultTemplateName,
			}, nil
		}
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}

	var tc TemplateConfig
	if err := json.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	tc.Templates = mergeTemplates(DefaultTemplates(), tc.Templates)

	return &tc, nil
}

// SaveTemplates saves the template catalog
func SaveTemplates(tc *TemplateConfig) error {
	path, err := GetTemplatesPath()
	if err != nil {
		return err
	}

	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// GetTemplate returns a template by name
func GetTemplate(name string) (*PromptTemplate, error) {
	tc, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	for _, t := range tc.Templates {
		if t.Name == name {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("template '%s' not found", name)
}

// ListTemplateNames returns the names of all templates
func ListTemplateNames() ([]string, error) {
	tc, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(tc.Templates))
	for i, t := range tc.Templates {
		names[i] = t.Name
	}
	return names, nil
}

// AddTemplate validates and adds a new template
func AddTemplate(t PromptTemplate) error {
	if err := ValidateTemplate(t); err != nil {
		return err
	}

	tc, err := LoadTemplates()
	if err != nil {
		return err
	}

	for _, existing := range tc.Templates {
		if existing.Name == t.Name {
			return fmt.Errorf("template '%s' already exists", t.Name)
		}
	}

	tc.Templates = append(tc.Templates, t)
	return SaveTemplates(tc)
}

// UpdateTemplate replaces an existing template
func UpdateTemplate(t PromptTemplate) error {
	if err := ValidateTemplate(t); err != nil {
		return err
	}

	tc, err := LoadTemplates()
	if err != nil {
		return err
	}

	found := false
	for i, existing := range tc.Templates {
		if existing.Name == t.Name {
			tc.Templates[i] = t
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("template '%s' not found", t.Name)
	}

	return SaveTemplates(tc)
}

// DeleteTemplate removes a user template by name. Built-in templates are
// merged back on every load, so they can be replaced but not deleted.
func DeleteTemplate(name string) error {
	if IsBuiltinTemplate(name) {
		return fmt.Errorf("cannot delete built-in template '%s' (use 'template add --replace' to change it)", name)
	}

	tc, err := LoadTemplates()
	if err != nil {
		return err
	}

	kept := make([]PromptTemplate, 0, len(tc.Templates))
	found := false
	for _, t := range tc.Templates {
		if t.Name == name {
			found = true
			continue
		}
		kept = append(kept, t)
	}

	if !found {
		return fmt.Errorf("template '%s' not found", name)
	}

	tc.Templates = kept

	if tc.DefaultTemplate == name {
		tc.DefaultTemplate = DefaultTemplateName
	}

	return SaveTemplates(tc)
}

// IsBuiltinTemplate reports whether name is one of DefaultTemplates
func IsBuiltinTemplate(name string) bool {
	for _, t := range DefaultTemplates() {
		if t.Name == name {
			return true
		}
	}
	return false
}

// SetDefaultTemplate sets the template used when none is requested
func SetDefaultTemplate(name string) error {
	if _, err := GetTemplate(name); err != nil {
		return err
	}

	tc, err := LoadTemplates()
	if err != nil {
		return err
	}

	tc.DefaultTemplate = name
	return SaveTemplates(tc)
}

// GetDefaultTemplate returns the default template
func GetDefaultTemplate() (*PromptTemplate, error) {
	tc, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	name := tc.DefaultTemplate
	if name == "" {
		name = DefaultTemplateName
	}

	return GetTemplate(name)
}

// ResolveTemplate parses the named template, or the default when name is empty
func ResolveTemplate(name string) (*prompt.Template, error) {
	var (
		t   *PromptTemplate
		err error
	)
	if name == "" {
		t, err = GetDefaultTemplate()
	} else {
		t, err = GetTemplate(name)
	}
	if err != nil {
		return nil, err
	}

	tmpl, err := prompt.New(t.Text)
	if err != nil {
		return nil, fmt.Errorf("template '%s': %w", t.Name, err)
	}
	return tmpl, nil
}

func mergeTemplates(defaults, custom []PromptTemplate) []PromptTemplate {
	result := make([]PromptTemplate, len(defaults))
	copy(result, defaults)

	for _, ct := range custom {
		found := false
		for i, dt := range result {
			if dt.Name == ct.Name {
				result[i] = ct
				found = true
				break
			}
		}
		if !found {
			result = append(result, ct)
		}
	}

	return result
}

// Validation constants
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
	MaxTemplateLength    = 32 * 1024 // 32KB
)

// ValidateTemplate validates a template's fields, including the placeholder
func ValidateTemplate(t PromptTemplate) error {
	fieldErrors := make(map[string]string)

	if t.Name == "" {
		fieldErrors["name"] = "name is required"
	} else if len(t.Name) > MaxNameLength {
		fieldErrors["name"] = fmt.Sprintf("name too long (max %d characters)", MaxNameLength)
	} else if !isValidTemplateName(t.Name) {
		fieldErrors["name"] = "name must contain only alphanumeric characters, underscores, and hyphens"
	}

	if len(t.Description) > MaxDescriptionLength {
		fieldErrors["description"] = fmt.Sprintf("description too long (max %d characters)", MaxDescriptionLength)
	}

	if len(t.Text) > MaxTemplateLength {
		fieldErrors["text"] = fmt.Sprintf("template too long (max %d characters)", MaxTemplateLength)
	} else if _, err := prompt.New(t.Text); err != nil {
		fieldErrors["text"] = err.Error()
	}

	if len(fieldErrors) > 0 {
		return fmt.Errorf("validation failed: %v", fieldErrors)
	}

	return nil
}

func isValidTemplateName(name string) bool {
	for _, c := range name {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-') {
			return false
		}
	}
	return true
}
