// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"github.com/evoleinik/fnkey/hotkey"
)

const (
	appName        = "fnkey"
	configFileName = "config.json"

	// apiKeyEnv is consulted when no transcription key is configured.
	apiKeyEnv = "GROQ_API_KEY"
)

// DefaultPolishPrompt is the built-in system prompt for the polish pass.
const DefaultPolishPrompt = `You clean up dictated text. Remove filler words ("um", "uh", "like", "you know"), fix grammar, punctuation and obvious mis-transcriptions, and preserve the speaker's meaning, tone and terminology. Reply with the cleaned text only, no commentary.`

// Endpoint holds one OpenAI-compatible API binding. BaseURL is the API
// prefix (for example "https://api.groq.com/openai/v1"); clients derive the
// operation paths themselves.
type Endpoint struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key,omitempty"`
	Model   string `json:"model"`
}

// Config is the process-wide configuration. It is constructed once at
// startup and read-only afterwards; the pipeline never consults ambient
// mutable state.
type Config struct {
	Hotkey       string `json:"hotkey"`        // fn, option, control, shift or command
	AlwaysPolish bool   `json:"always_polish"` // Polish every dictation unless the modifier is held
	Language     string `json:"language,omitempty"`
	PolishPrompt string `json:"polish_prompt,omitempty"`

	Transcription Endpoint `json:"transcription"`
	Polish        Endpoint `json:"polish"`
}

// Load reads the configuration file, applies defaults and fallbacks, and
// validates the result. A missing file yields the default configuration.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults stand.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	cfg.applyFallbacks()

	if _, err := hotkey.ParseSpec(cfg.Hotkey); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save persists the configuration to disk. The pipeline never calls this;
// it exists for settings tooling.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyFallbacks fills derived and environment-backed fields: the env API
// key, the polish endpoint inheriting the transcription endpoint, and the
// canonicalized language hint.
func (c *Config) applyFallbacks() {
	if c.Transcription.APIKey == "" {
		c.Transcription.APIKey = os.Getenv(apiKeyEnv)
	}
	if c.Polish.BaseURL == "" {
		c.Polish.BaseURL = c.Transcription.BaseURL
	}
	if c.Polish.APIKey == "" {
		c.Polish.APIKey = c.Transcription.APIKey
	}
	if c.PolishPrompt == "" {
		c.PolishPrompt = DefaultPolishPrompt
	}
	c.Language = NormalizeLanguage(c.Language)
}

// NormalizeLanguage canonicalizes a language hint to its base code
// ("en-US" becomes "en"). Empty, "auto" and unparseable hints become "",
// which endpoints treat as auto-detect.
func NormalizeLanguage(hint string) string {
	if hint == "" || hint == "auto" {
		return ""
	}
	tag, err := language.Parse(hint)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, configFileName), nil
}

func defaultConfig() *Config {
	return &Config{
		Hotkey: "fn",
		Transcription: Endpoint{
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "whisper-large-v3",
		},
		Polish: Endpoint{
			Model: "llama-3.3-70b-versatile",
		},
	}
}
