package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yegors/scribe/internal/audio"
	"github.com/yegors/scribe/pkg/logger"
)

// Recorder captures audio to a file until stopped
type Recorder interface {
	Start(ctx context.Context) error
	Stop() error
	OutputPath() string
}

// Transcriber converts a finished recording into text
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
	Name() string
}

// ClipboardWriter places text on the system clipboard
type ClipboardWriter interface {
	Copy(ctx context.Context, text string) error
}

// StopSignal blocks until the operator asks to stop recording
type StopSignal interface {
	Await() error
}

// Config represents the controller configuration
type Config struct {
	// KeepRecording leaves the WAV file on disk after a successful run
	KeepRecording bool
}

// Result describes a completed dictation session
type Result struct {
	SessionID     string
	Transcript    string
	AudioPath     string
	AudioDuration time.Duration
}

// Controller drives one dictation session through its stages in order:
// record, wait for the stop key, stop, transcribe, copy. Each stage must
// succeed before the next runs; a failed stage aborts the rest.
type Controller struct {
	recorder    Recorder
	stop        StopSignal
	transcriber Transcriber
	clipboard   ClipboardWriter
	config      Config
	logger      *logger.Logger
}

// NewController creates a new pipeline controller
func NewController(
	recorder Recorder,
	stop StopSignal,
	transcriber Transcriber,
	clipboard ClipboardWriter,
	config Config,
	log *logger.Logger,
) *Controller {
	return &Controller{
		recorder:    recorder,
		stop:        stop,
		transcriber: transcriber,
		clipboard:   clipboard,
		config:      config,
		logger:      log.Named("pipeline"),
	}
}

// Run executes one full dictation session and returns the transcript it
// placed on the clipboard. The recording stays on disk when any stage
// fails, so a failed transcription can be retried by hand.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	sessionID := uuid.New().String()
	log := c.logger.WithSession(sessionID)

	log.Info("Starting dictation session")

	if err := c.recorder.Start(ctx); err != nil {
		return nil, &SpawnError{Err: err}
	}

	log.Info("Recording, press any key to stop")
	if err := c.stop.Await(); err != nil {
		// The recorder is still running; stop it before bailing out
		if stopErr := c.recorder.Stop(); stopErr != nil {
			log.Error("Failed to stop recorder after wait failure", logger.Error(stopErr))
		}
		return nil, fmt.Errorf("failed to wait for stop signal: %w", err)
	}

	if err := c.recorder.Stop(); err != nil {
		return nil, &ProcessError{Err: err}
	}

	audioPath := c.recorder.OutputPath()

	// Sanity-check the recording, but never abort on it: a truncated or
	// empty file still goes to the transcriber and surfaces there.
	var duration time.Duration
	if info, err := audio.Probe(audioPath); err != nil {
		log.Warn("Recording probe failed",
			logger.String("file", audioPath),
			logger.Error(err),
		)
	} else {
		duration = info.Duration
		log.Info("Recording finished",
			logger.String("file", audioPath),
			logger.Duration("duration", info.Duration),
			logger.Int("sample_rate", info.SampleRate),
			logger.Int("channels", info.Channels),
		)
	}

	text, err := c.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, &TranscriptionError{Backend: c.transcriber.Name(), Err: err}
	}
	if IsBlankTranscript(text) {
		return nil, &TranscriptionError{
			Backend: c.transcriber.Name(),
			Err:     fmt.Errorf("transcriber produced no text"),
		}
	}

	if err := c.clipboard.Copy(ctx, text); err != nil {
		return nil, &ClipboardError{Err: err}
	}

	if !c.config.KeepRecording {
		if err := os.Remove(audioPath); err != nil {
			log.Warn("Failed to remove recording", logger.String("file", audioPath), logger.Error(err))
		}
	}

	log.Info("Session complete",
		logger.String("backend", c.transcriber.Name()),
		logger.Int("transcript_bytes", len(text)),
	)

	return &Result{
		SessionID:     sessionID,
		Transcript:    text,
		AudioPath:     audioPath,
		AudioDuration: duration,
	}, nil
}

// IsBlankTranscript reports whether the transcriber produced no usable
// text. whisper emits [BLANK_AUDIO] markers for silent recordings. Only
// the check uses the cleaned form; the transcript itself is never altered.
func IsBlankTranscript(text string) bool {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return true
	}
	return strings.TrimSpace(strings.ReplaceAll(cleaned, "[BLANK_AUDIO]", "")) == ""
}
