package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Audio.Device != "front:CARD=BRIO" {
		t.Errorf("unexpected default device: %s", cfg.Audio.Device)
	}
	if cfg.Audio.DurationSeconds != 3600 {
		t.Errorf("unexpected default duration: %d", cfg.Audio.DurationSeconds)
	}
	if cfg.Audio.Volume != 2.0 {
		t.Errorf("unexpected default volume: %g", cfg.Audio.Volume)
	}
	if cfg.Transcription.Backend != "whisper" {
		t.Errorf("unexpected default backend: %s", cfg.Transcription.Backend)
	}
	if cfg.Transcription.Model != "turbo" {
		t.Errorf("unexpected default model: %s", cfg.Transcription.Model)
	}
	if cfg.Clipboard.Command != "cb copy" {
		t.Errorf("unexpected default clipboard command: %s", cfg.Clipboard.Command)
	}
	if !cfg.History.Enabled {
		t.Error("history should be enabled by default")
	}
	if cfg.Notifications.Enabled {
		t.Error("notifications should be disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Audio.Device != Default().Audio.Device {
		t.Errorf("expected default device, got %s", cfg.Audio.Device)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[audio]
device = "hw:1,0"
volume = 1.5

[transcription]
backend = "openai"

[transcription.openai]
api_key = "sk-test"

[clipboard]
command = "xclip -selection clipboard"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Audio.Device != "hw:1,0" {
		t.Errorf("device not overridden: %s", cfg.Audio.Device)
	}
	if cfg.Audio.Volume != 1.5 {
		t.Errorf("volume not overridden: %g", cfg.Audio.Volume)
	}
	if cfg.Transcription.Backend != "openai" {
		t.Errorf("backend not overridden: %s", cfg.Transcription.Backend)
	}
	if cfg.Transcription.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key not overridden: %s", cfg.Transcription.OpenAI.APIKey)
	}
	if cfg.Clipboard.Command != "xclip -selection clipboard" {
		t.Errorf("clipboard command not overridden: %s", cfg.Clipboard.Command)
	}

	// Values absent from the file keep their defaults
	if cfg.Audio.DurationSeconds != 3600 {
		t.Errorf("duration should keep default, got %d", cfg.Audio.DurationSeconds)
	}
	if cfg.Transcription.Model != "turbo" {
		t.Errorf("model should keep default, got %s", cfg.Transcription.Model)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is not toml = = ="), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty device", func(c *Config) { c.Audio.Device = "" }},
		{"zero duration", func(c *Config) { c.Audio.DurationSeconds = 0 }},
		{"negative volume", func(c *Config) { c.Audio.Volume = -1 }},
		{"empty ffmpeg path", func(c *Config) { c.Audio.FFmpegPath = "" }},
		{"unknown backend", func(c *Config) { c.Transcription.Backend = "parakeet" }},
		{"blank clipboard command", func(c *Config) { c.Clipboard.Command = "   " }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded, err := ExpandPath("~/.config/scribe/config.toml")
	if err != nil {
		t.Fatalf("failed to expand path: %v", err)
	}
	if !strings.HasPrefix(expanded, home) {
		t.Errorf("expected home prefix, got %s", expanded)
	}
	if strings.Contains(expanded, "~") {
		t.Errorf("tilde not expanded: %s", expanded)
	}

	plain, err := ExpandPath("/tmp/config.toml")
	if err != nil {
		t.Fatalf("failed to expand plain path: %v", err)
	}
	if plain != "/tmp/config.toml" {
		t.Errorf("plain path should be unchanged, got %s", plain)
	}
}
