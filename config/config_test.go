package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// withConfigDir points os.UserConfigDir at a temp dir for the test.
func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir) // darwin resolves UserConfigDir from HOME
	t.Setenv(apiKeyEnv, "")
	return dir
}

func writeConfigFile(t *testing.T, cfg map[string]any) {
	t.Helper()
	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	withConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Hotkey != "fn" {
		t.Errorf("hotkey = %q, want fn", cfg.Hotkey)
	}
	if cfg.AlwaysPolish {
		t.Error("always_polish should default to false")
	}
	if cfg.Transcription.Model != "whisper-large-v3" {
		t.Errorf("transcription model = %q", cfg.Transcription.Model)
	}
	if cfg.PolishPrompt != DefaultPolishPrompt {
		t.Error("polish prompt should default to the built-in prompt")
	}
	if cfg.Polish.BaseURL != cfg.Transcription.BaseURL {
		t.Errorf("polish base URL = %q, want inherited %q", cfg.Polish.BaseURL, cfg.Transcription.BaseURL)
	}
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	withConfigDir(t)
	t.Setenv(apiKeyEnv, "gsk_from_env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Transcription.APIKey != "gsk_from_env" {
		t.Errorf("transcription key = %q, want env value", cfg.Transcription.APIKey)
	}
	if cfg.Polish.APIKey != "gsk_from_env" {
		t.Errorf("polish key = %q, want transcription fallback", cfg.Polish.APIKey)
	}
}

func TestPolishCredentialFallback(t *testing.T) {
	withConfigDir(t)
	writeConfigFile(t, map[string]any{
		"hotkey": "option",
		"transcription": map[string]any{
			"base_url": "https://stt.example/v1",
			"api_key":  "stt-key",
			"model":    "whisper-1",
		},
		"polish": map[string]any{
			"base_url": "https://llm.example/v1",
			"model":    "gpt-4o-mini",
		},
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Polish.APIKey != "stt-key" {
		t.Errorf("polish key = %q, want transcription fallback", cfg.Polish.APIKey)
	}
	if cfg.Polish.BaseURL != "https://llm.example/v1" {
		t.Errorf("polish base URL = %q, explicit value must win", cfg.Polish.BaseURL)
	}
}

func TestPolishCredentialExplicit(t *testing.T) {
	withConfigDir(t)
	writeConfigFile(t, map[string]any{
		"hotkey":        "fn",
		"transcription": map[string]any{"api_key": "stt-key", "model": "m"},
		"polish":        map[string]any{"api_key": "llm-key", "model": "m"},
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Polish.APIKey != "llm-key" {
		t.Errorf("polish key = %q, want explicit llm-key", cfg.Polish.APIKey)
	}
}

func TestLoadRejectsUnknownHotkey(t *testing.T) {
	withConfigDir(t)
	writeConfigFile(t, map[string]any{"hotkey": "hyper"})

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown hotkey")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	withConfigDir(t)

	orig := defaultConfig()
	orig.Hotkey = "control"
	orig.AlwaysPolish = true
	orig.Transcription.APIKey = "key1"
	if err := orig.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hotkey != "control" || !cfg.AlwaysPolish || cfg.Transcription.APIKey != "key1" {
		t.Errorf("round trip lost fields: %+v", cfg)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"auto", "auto", ""},
		{"plain", "en", "en"},
		{"region_stripped", "en-US", "en"},
		{"underscore_region", "pt_BR", "pt"},
		{"uppercase", "DE", "de"},
		{"garbage", "not a language", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLanguage(tt.in); got != tt.want {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
