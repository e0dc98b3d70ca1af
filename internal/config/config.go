// Package config handles configuration and prompt templates for chatbot.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider kinds
const (
	ProviderOpenAI = "openai"
	ProviderHTTP   = "http"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Enabled          bool   `json:"enabled" yaml:"enabled"`                       // Render responses as markdown on a TTY
	Style            string `json:"style" yaml:"style"`                           // "dark", "light", "notty" or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji" yaml:"enable_emoji"`             // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines" yaml:"preserve_newlines"`   // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap" yaml:"table_wrap"`                 // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links" yaml:"inline_table_links"` // Render links inline in tables
}

// HTTPProviderConfig configures the generic JSON endpoint provider
type HTTPProviderConfig struct {
	URL          string            `json:"url,omitempty" yaml:"url,omitempty"`
	Method       string            `json:"method,omitempty" yaml:"method,omitempty"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	BodyTemplate string            `json:"body_template,omitempty" yaml:"body_template,omitempty"`
	// ResponsePath is a gjson path to the reply text, e.g. "data.reply".
	ResponsePath string `json:"response_path,omitempty" yaml:"response_path,omitempty"`
	// Impersonate sends requests with a browser TLS fingerprint.
	Impersonate bool `json:"impersonate,omitempty" yaml:"impersonate,omitempty"`
}

// Config represents the user configuration
type Config struct {
	Provider string `json:"provider" yaml:"provider"`
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// APIKey is normally supplied through CHATBOT_API_KEY or OPENAI_API_KEY
	// rather than stored on disk.
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	// Timeout is the per-request timeout in seconds. Zero keeps the client default.
	Timeout  int                `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Template string             `json:"template,omitempty" yaml:"template,omitempty"`
	HTTP     HTTPProviderConfig `json:"http,omitempty" yaml:"http,omitempty"`
	// Verbose forces debug logging on stderr.
	Verbose         bool           `json:"verbose" yaml:"verbose"`
	LogLevel        string         `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard" yaml:"copy_to_clipboard"`
	Markdown        MarkdownConfig `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Enabled:          false,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Provider:        ProviderOpenAI,
		Model:           "gpt-4o-mini",
		Verbose:         false,
		LogLevel:        "warn",
		CopyToClipboard: false,
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path.
// CHATBOT_CONFIG_DIR overrides the default ~/.chatbot.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Abs(dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".chatbot"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the config may hold an API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the base config file in use, or config.json when
// none exists yet
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if path := findConfigFile(configDir, "config"); path != "" {
		return path, nil
	}
	return filepath.Join(configDir, "config.json"), nil
}

// findConfigFile returns the first existing file named base with a
// .json, .yaml or .yml extension, or "" if none exists.
func findConfigFile(dir, base string) string {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// decodeInto overlays the file at path onto cfg. Fields absent from the
// file keep their current value.
func decodeInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig loads the base configuration file from disk, without profile
// or environment overrides. It is what the settings editor reads and saves.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configDir, err := GetConfigDir()
	if err != nil {
		return cfg, err
	}

	path := findConfigFile(configDir, "config")
	if path == "" {
		return cfg, nil // Use defaults if config doesn't exist
	}

	if err := decodeInto(path, &cfg); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// Load returns the effective configuration: defaults, then the base file,
// then the profile file (config.<profile>.json|yaml), then the environment.
func Load(profile string) (Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return cfg, err
	}

	if profile == "" {
		profile = os.Getenv(EnvProfile)
	}
	if profile != "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return cfg, err
		}
		path := findConfigFile(configDir, "config."+profile)
		if path == "" {
			return cfg, fmt.Errorf("profile %q not found in %s", profile, configDir)
		}
		if err := decodeInto(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// SaveConfig writes cfg back to the base config file, keeping its format.
// Without an existing file it creates config.json.
func SaveConfig(cfg Config) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the clients cannot use
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
	case ProviderHTTP:
		if strings.TrimSpace(c.HTTP.URL) == "" {
			return fmt.Errorf("provider %q requires http.url", ProviderHTTP)
		}
	default:
		return fmt.Errorf("unsupported provider %q (want %q or %q)", c.Provider, ProviderOpenAI, ProviderHTTP)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.Timeout)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}

	return nil
}

// Redacted returns a copy safe to print
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = redact(c.APIKey)
	}
	if len(c.HTTP.Headers) > 0 {
		headers := make(map[string]string, len(c.HTTP.Headers))
		for k, v := range c.HTTP.Headers {
			if strings.EqualFold(k, "authorization") || strings.Contains(strings.ToLower(k), "key") {
				v = redact(v)
			}
			headers[k] = v
		}
		c.HTTP.Headers = headers
	}
	return c
}

func redact(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:3] + "****" + s[len(s)-4:]
}

// AvailableModels returns the models offered by the settings editor
func AvailableModels() []string {
	return []string{
		"gpt-4o-mini",
		"gpt-4o",
		"gpt-4.1-mini",
		"gpt-4.1",
		"o3-mini",
	}
}
