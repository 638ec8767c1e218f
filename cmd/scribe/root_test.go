package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// newFlagCommand builds a command carrying the root override flags
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().StringVarP(&flagDevice, "device", "d", "", "")
	cmd.Flags().IntVar(&flagDuration, "duration", 0, "")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0, "")
	return cmd
}

func TestLoadConfigPrecedence(t *testing.T) {
	origCfgFile := cfgFile
	t.Cleanup(func() { cfgFile = origCfgFile })

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[audio]
device = "from-file"
duration_seconds = 120
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfgFile = path

	// No flags changed: file wins over defaults
	cfg, err := loadConfig(newFlagCommand())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Audio.Device != "from-file" {
		t.Errorf("file value should win over default: %s", cfg.Audio.Device)
	}
	if cfg.Audio.DurationSeconds != 120 {
		t.Errorf("file value should win over default: %d", cfg.Audio.DurationSeconds)
	}
	if cfg.Audio.Volume != 2.0 {
		t.Errorf("default should apply when file is silent: %g", cfg.Audio.Volume)
	}

	// Changed flags win over the file
	cmd := newFlagCommand()
	if err := cmd.Flags().Set("device", "from-flag"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if err := cmd.Flags().Set("volume", "1.25"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	cfg, err = loadConfig(cmd)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Audio.Device != "from-flag" {
		t.Errorf("flag should win over file: %s", cfg.Audio.Device)
	}
	if cfg.Audio.Volume != 1.25 {
		t.Errorf("flag should win over default: %g", cfg.Audio.Volume)
	}
	if cfg.Audio.DurationSeconds != 120 {
		t.Errorf("unchanged flag must not clobber file value: %d", cfg.Audio.DurationSeconds)
	}
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	origCfgFile := cfgFile
	t.Cleanup(func() { cfgFile = origCfgFile })
	cfgFile = filepath.Join(t.TempDir(), "absent.toml")

	cmd := newFlagCommand()
	if err := cmd.Flags().Set("volume", "-3"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Fatal("expected validation error for negative volume")
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"short", "hello world", 60, "hello world"},
		{"multiline", "hello\nworld\n", 60, "hello world"},
		{"collapses whitespace", "a   b\t\tc", 60, "a b c"},
		{"truncates", "abcdefghij", 4, "abcd..."},
		{"empty", "", 60, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt(tt.text, tt.max); got != tt.want {
				t.Errorf("excerpt(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}
