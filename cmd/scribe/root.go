package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yegors/scribe/internal/clipboard"
	"github.com/yegors/scribe/internal/config"
	"github.com/yegors/scribe/internal/notify"
	"github.com/yegors/scribe/internal/pipeline"
	"github.com/yegors/scribe/internal/recorder"
	"github.com/yegors/scribe/internal/storage/sqlite"
	"github.com/yegors/scribe/internal/terminal"
	"github.com/yegors/scribe/internal/transcriber"
	"github.com/yegors/scribe/pkg/logger"
)

var (
	cfgFile      string
	flagDevice   string
	flagDuration int
	flagVolume   float64
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Record speech, transcribe it, and copy the text to the clipboard",
	Long: `Scribe records audio from an ALSA capture device until a key is
pressed, transcribes the recording with the configured speech-to-text
backend, and pipes the transcript into a clipboard command.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPipeline,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath(), "path to the config file")
	rootCmd.Flags().StringVarP(&flagDevice, "device", "d", "", "ALSA capture device (overrides config)")
	rootCmd.Flags().IntVar(&flagDuration, "duration", 0, "maximum recording duration in seconds (overrides config)")
	rootCmd.Flags().Float64Var(&flagVolume, "volume", 0, "input volume multiplier (overrides config)")

	rootCmd.AddCommand(transcribeCmd, historyCmd, copyCmd)
}

// Execute runs the CLI and exits non-zero on any failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies CLI flag overrides on top
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	// Flags win over the file, the file wins over defaults
	if cmd.Flags().Changed("device") {
		cfg.Audio.Device = flagDevice
	}
	if cmd.Flags().Changed("duration") {
		cfg.Audio.DurationSeconds = flagDuration
	}
	if cmd.Flags().Changed("volume") {
		cfg.Audio.Volume = flagVolume
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from the logging section
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	tr, err := transcriber.New(cfg.Transcription, log)
	if err != nil {
		return err
	}

	clip, err := clipboard.NewCommand(cfg.Clipboard, log)
	if err != nil {
		return err
	}

	controller := pipeline.NewController(
		recorder.NewFFmpeg(cfg.Audio, log),
		terminal.NewKeyWait(os.Stdin, log),
		tr,
		clip,
		pipeline.Config{KeepRecording: cfg.Audio.KeepRecordings},
		log,
	)

	notifier := notify.New(cfg.Notifications, log)

	result, err := controller.Run(cmd.Context())
	if err != nil {
		notifier.Failed(err)
		return err
	}

	notifier.Done(len(result.Transcript))
	saveHistory(cfg, log, result, tr, cfg.Audio.Device)
	return nil
}

// saveHistory appends the session to the local transcript history. The
// transcript is already on the clipboard, so failures here are logged
// and never fail the run.
func saveHistory(cfg *config.Config, log *logger.Logger, result *pipeline.Result, tr transcriber.Transcriber, device string) {
	if !cfg.History.Enabled {
		return
	}

	path, err := cfg.HistoryDatabasePath()
	if err != nil {
		log.Warn("Failed to resolve history database path", logger.Error(err))
		return
	}

	store, err := sqlite.New(path, log)
	if err != nil {
		log.Warn("Failed to open history database", logger.Error(err))
		return
	}
	defer store.Close()

	model := cfg.Transcription.Model
	if tr.Name() == "openai" {
		model = cfg.Transcription.OpenAI.Model
	}

	if _, err := store.Store(&sqlite.TranscriptRecord{
		SessionID:    result.SessionID,
		Device:       device,
		Backend:      tr.Name(),
		Model:        model,
		AudioPath:    result.AudioPath,
		DurationSecs: result.AudioDuration.Seconds(),
		Content:      result.Transcript,
		CreatedAt:    time.Now(),
	}); err != nil {
		log.Warn("Failed to store transcript in history", logger.Error(err))
	}
}
