package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// Environment variables read by Load.
const (
	EnvConfigDir   = "CHATBOT_CONFIG_DIR"
	EnvProfile     = "CHATBOT_PROFILE"
	EnvProvider    = "CHATBOT_PROVIDER"
	EnvModel       = "CHATBOT_MODEL"
	EnvBaseURL     = "CHATBOT_BASE_URL"
	EnvAPIKey      = "CHATBOT_API_KEY"
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvTemperature = "CHATBOT_TEMPERATURE"
	EnvMaxTokens   = "CHATBOT_MAX_TOKENS"
	EnvTimeout     = "CHATBOT_TIMEOUT"
	EnvTemplate    = "CHATBOT_TEMPLATE"
	EnvVerbose     = "CHATBOT_VERBOSE"
	EnvLogLevel    = "CHATBOT_LOG_LEVEL"
)

// ApplyEnv overlays environment variables onto cfg. Unset or empty
// variables leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if v := env(EnvProvider); v != "" {
		cfg.Provider = strings.ToLower(v)
	}
	if v := env(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := env(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := env(EnvAPIKey); v != "" {
		cfg.APIKey = v
	} else if v := env(EnvOpenAIKey); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	if v := env(EnvTemplate); v != "" {
		cfg.Template = v
	}
	if v := env(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := env(EnvTemperature); v != "" {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTemperature, err)
		}
		cfg.Temperature = f
	}
	if v := env(EnvMaxTokens); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxTokens, err)
		}
		cfg.MaxTokens = n
	}
	if v := env(EnvTimeout); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = n
	}
	if v := env(EnvVerbose); v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		cfg.Verbose = b
	}

	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
