package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yegors/scribe/internal/config"
	"github.com/yegors/scribe/pkg/logger"
)

// stderrTailBytes limits how much captured ffmpeg output is attached to errors
const stderrTailBytes = 2048

// FFmpeg captures audio by running ffmpeg as a child process against an
// ALSA input device. A single instance handles one recording at a time.
type FFmpeg struct {
	config config.AudioConfig
	logger *logger.Logger

	cmd    *exec.Cmd
	stderr bytes.Buffer
	path   string
}

// NewFFmpeg creates a new ffmpeg-backed recorder
func NewFFmpeg(cfg config.AudioConfig, log *logger.Logger) *FFmpeg {
	return &FFmpeg{
		config: cfg,
		logger: log.Named("recorder"),
	}
}

// Start launches ffmpeg writing to a fresh WAV file in the output directory.
// It returns once the process is running; capture continues until Stop is
// called or the configured duration limit elapses.
func (r *FFmpeg) Start(ctx context.Context) error {
	if r.cmd != nil {
		return fmt.Errorf("recording already in progress")
	}

	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	r.path = filepath.Join(r.config.OutputDir, fmt.Sprintf("output_%d.wav", time.Now().Unix()))
	r.stderr.Reset()

	args := []string{
		"-y",
		"-f", "alsa",
		"-i", r.config.Device,
		"-filter:a", fmt.Sprintf("volume=%g", r.config.Volume),
		"-t", strconv.Itoa(r.config.DurationSeconds),
		r.path,
	}

	cmd := exec.CommandContext(ctx, r.config.FFmpegPath, args...)
	cmd.Stderr = &r.stderr
	// On context cancellation interrupt ffmpeg instead of killing it, so
	// the WAV header still gets finalized.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 5 * time.Second

	r.logger.Info("Starting audio capture",
		logger.String("device", r.config.Device),
		logger.String("output", r.path),
		logger.Int("max_duration_secs", r.config.DurationSeconds),
		logger.Float64("volume", r.config.Volume),
	)
	r.logger.Debug("Recorder command",
		logger.String("binary", r.config.FFmpegPath),
		logger.String("args", strings.Join(args, " ")),
	)

	if err := cmd.Start(); err != nil {
		r.path = ""
		return fmt.Errorf("failed to start %s: %w", r.config.FFmpegPath, err)
	}

	r.cmd = cmd
	return nil
}

// Stop interrupts the running capture and waits for ffmpeg to exit.
// ffmpeg reports exit code 130 or 255 when stopped with SIGINT depending
// on version, and 0 when the duration limit elapsed first; all three are
// a clean stop. Anything else, including death by an uncaught signal, is
// an error.
func (r *FFmpeg) Stop() error {
	if r.cmd == nil || r.cmd.Process == nil {
		return fmt.Errorf("no recording in progress")
	}

	cmd := r.cmd
	r.cmd = nil

	// SIGINT lets ffmpeg flush and close the WAV container properly
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("failed to interrupt recorder: %w", err)
	}

	err := cmd.Wait()
	if err == nil {
		r.logger.Info("Audio capture stopped", logger.String("output", r.path))
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		switch code {
		case 130, 255:
			r.logger.Info("Audio capture stopped",
				logger.String("output", r.path),
				logger.Int("exit_code", code),
			)
			return nil
		case -1:
			return fmt.Errorf("recorder killed before exiting: %w: %s", err, r.stderrTail())
		default:
			return fmt.Errorf("recorder exited with code %d: %s", code, r.stderrTail())
		}
	}

	return fmt.Errorf("failed to wait for recorder: %w", err)
}

// OutputPath returns the path of the WAV file the current or most recent
// capture writes to. Empty until Start has been called.
func (r *FFmpeg) OutputPath() string {
	return r.path
}

// stderrTail returns the last chunk of captured ffmpeg output for error messages
func (r *FFmpeg) stderrTail() string {
	out := r.stderr.Bytes()
	if len(out) > stderrTailBytes {
		out = out[len(out)-stderrTailBytes:]
	}
	return strings.TrimSpace(string(out))
}
