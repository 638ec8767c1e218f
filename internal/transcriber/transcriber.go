package transcriber

import (
	"context"
	"fmt"

	"github.com/yegors/scribe/internal/config"
	"github.com/yegors/scribe/pkg/logger"
)

// Transcriber converts a finished audio recording into text
type Transcriber interface {
	// Transcribe runs speech-to-text on the file at path and returns the
	// transcript exactly as the backend produced it.
	Transcribe(ctx context.Context, path string) (string, error)
	// Name identifies the backend in logs and history records
	Name() string
}

// New creates the transcriber selected by the configuration
func New(cfg config.TranscriptionConfig, log *logger.Logger) (Transcriber, error) {
	switch cfg.Backend {
	case "whisper":
		return NewWhisperCLI(cfg, log), nil
	case "openai":
		return NewOpenAI(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported transcription backend %q (supported: whisper, openai)", cfg.Backend)
	}
}
