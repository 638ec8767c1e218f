package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/yegors/scribe/internal/config"
	"github.com/yegors/scribe/pkg/logger"
)

// stderrTailBytes limits how much whisper output is attached to errors
const stderrTailBytes = 2048

// WhisperCLI transcribes recordings by running the whisper command line
// program and capturing its standard output.
type WhisperCLI struct {
	config config.TranscriptionConfig
	logger *logger.Logger
}

// Ensure the backend implements the interface
var _ Transcriber = (*WhisperCLI)(nil)

// NewWhisperCLI creates a new whisper CLI transcriber
func NewWhisperCLI(cfg config.TranscriptionConfig, log *logger.Logger) *WhisperCLI {
	return &WhisperCLI{
		config: cfg,
		logger: log.Named("whisper"),
	}
}

// Name returns the backend identifier
func (w *WhisperCLI) Name() string {
	return "whisper"
}

// Transcribe runs whisper on the audio file and returns its stdout verbatim
func (w *WhisperCLI) Transcribe(ctx context.Context, path string) (string, error) {
	args := []string{
		"--model", w.config.Model,
		"--device", w.config.ComputeDevice,
		"--language", w.config.Language,
		path,
	}

	cmd := exec.CommandContext(ctx, w.config.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	w.logger.Info("Transcribing recording",
		logger.String("file", path),
		logger.String("model", w.config.Model),
		logger.String("device", w.config.ComputeDevice),
		logger.String("language", w.config.Language),
	)

	start := time.Now()
	if err := cmd.Run(); err != nil {
		tail := strings.TrimSpace(stderr.String())
		if len(tail) > stderrTailBytes {
			tail = tail[len(tail)-stderrTailBytes:]
		}
		return "", fmt.Errorf("failed to run %s: %w: %s", w.config.Binary, err, tail)
	}

	w.logger.Info("Transcription complete",
		logger.Duration("elapsed", time.Since(start)),
		logger.Int("output_bytes", stdout.Len()),
	)

	return stdout.String(), nil
}
