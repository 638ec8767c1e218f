package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the complete application configuration
type Config struct {
	Audio         AudioConfig         `toml:"audio"`
	Transcription TranscriptionConfig `toml:"transcription"`
	Clipboard     ClipboardConfig     `toml:"clipboard"`
	History       HistoryConfig       `toml:"history"`
	Notifications NotificationsConfig `toml:"notifications"`
	Logging       LoggingConfig       `toml:"logging"`
}

// AudioConfig represents the audio capture configuration
type AudioConfig struct {
	Device          string  `toml:"device"`
	DurationSeconds int     `toml:"duration_seconds"`
	Volume          float64 `toml:"volume"`
	FFmpegPath      string  `toml:"ffmpeg_path"`
	OutputDir       string  `toml:"output_dir"`
	KeepRecordings  bool    `toml:"keep_recordings"`
}

// TranscriptionConfig represents the transcription backend configuration
type TranscriptionConfig struct {
	Backend       string       `toml:"backend"`
	Binary        string       `toml:"binary"`
	Model         string       `toml:"model"`
	Language      string       `toml:"language"`
	ComputeDevice string       `toml:"compute_device"`
	OpenAI        OpenAIConfig `toml:"openai"`
}

// OpenAIConfig represents the OpenAI API transcription configuration
type OpenAIConfig struct {
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ClipboardConfig represents the clipboard integration configuration
type ClipboardConfig struct {
	Command string `toml:"command"`
}

// HistoryConfig represents the transcript history configuration
type HistoryConfig struct {
	Enabled      bool   `toml:"enabled"`
	DatabasePath string `toml:"database_path"`
}

// NotificationsConfig represents the desktop notification configuration
type NotificationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			Device:          "front:CARD=BRIO",
			DurationSeconds: 3600,
			Volume:          2.0,
			FFmpegPath:      "ffmpeg",
			OutputDir:       ".",
			KeepRecordings:  true,
		},
		Transcription: TranscriptionConfig{
			Backend:       "whisper",
			Binary:        "whisper",
			Model:         "turbo",
			Language:      "en",
			ComputeDevice: "cuda",
			OpenAI: OpenAIConfig{
				Model:          "whisper-1",
				TimeoutSeconds: 120,
			},
		},
		Clipboard: ClipboardConfig{
			Command: "cb copy",
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "~/.local/share/scribe/history.db",
		},
		Notifications: NotificationsConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the default configuration file path
func DefaultPath() string {
	return "~/.config/scribe/config.toml"
}

// Load reads the configuration file at the given path, falling back to
// defaults when the file does not exist. Values present in the file
// override defaults; absent values keep them.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg := Default()

	if _, err := os.Stat(expanded); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if _, err := toml.DecodeFile(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Audio.Device == "" {
		return fmt.Errorf("audio device must not be empty")
	}
	if c.Audio.DurationSeconds <= 0 {
		return fmt.Errorf("audio duration must be positive, got %d", c.Audio.DurationSeconds)
	}
	if c.Audio.Volume <= 0 {
		return fmt.Errorf("audio volume must be positive, got %g", c.Audio.Volume)
	}
	if c.Audio.FFmpegPath == "" {
		return fmt.Errorf("ffmpeg path must not be empty")
	}

	switch c.Transcription.Backend {
	case "whisper", "openai":
	default:
		return fmt.Errorf("unsupported transcription backend %q (supported: whisper, openai)", c.Transcription.Backend)
	}

	if strings.TrimSpace(c.Clipboard.Command) == "" {
		return fmt.Errorf("clipboard command must not be empty")
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format %q (supported: json, console)", c.Logging.Format)
	}

	return nil
}

// HistoryDatabasePath returns the history database path with ~ expanded
func (c *Config) HistoryDatabasePath() (string, error) {
	return ExpandPath(c.History.DatabasePath)
}

// ExpandPath expands a leading ~ to the user home directory
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
