package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yegors/scribe/internal/audio"
	"github.com/yegors/scribe/internal/clipboard"
	"github.com/yegors/scribe/internal/pipeline"
	"github.com/yegors/scribe/internal/transcriber"
	"github.com/yegors/scribe/pkg/logger"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe an existing audio file and copy the text",
	Long: `Transcribe skips recording and runs the configured speech-to-text
backend on an existing audio file. The transcript goes to the clipboard
and is printed to stdout for piping.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		path := args[0]
		var duration time.Duration
		if info, err := audio.Probe(path); err != nil {
			log.Warn("Audio probe failed", logger.String("file", path), logger.Error(err))
		} else {
			duration = info.Duration
		}

		text, err := tr.Transcribe(cmd.Context(), path)
		if err != nil {
			return &pipeline.TranscriptionError{Backend: tr.Name(), Err: err}
		}
		if pipeline.IsBlankTranscript(text) {
			return &pipeline.TranscriptionError{
				Backend: tr.Name(),
				Err:     fmt.Errorf("transcriber produced no text"),
			}
		}

		if err := clip.Copy(cmd.Context(), text); err != nil {
			return &pipeline.ClipboardError{Err: err}
		}

		// Print for piping into other tools
		fmt.Print(text)

		saveHistory(cfg, log, &pipeline.Result{
			SessionID:     uuid.New().String(),
			Transcript:    text,
			AudioPath:     path,
			AudioDuration: duration,
		}, tr, "")
		return nil
	},
}
