package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode"

	"github.com/yegors/scribe/internal/config"
	"github.com/yegors/scribe/pkg/logger"
)

// stderrTailBytes limits how much captured command output is attached to errors
const stderrTailBytes = 2048

// Command pipes transcript text to an external clipboard utility
type Command struct {
	argv   []string
	logger *logger.Logger
}

// NewCommand creates a clipboard writer from the configured command string
func NewCommand(cfg config.ClipboardConfig, log *logger.Logger) (*Command, error) {
	argv, err := SplitCommand(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clipboard command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("clipboard command is empty")
	}
	return &Command{
		argv:   argv,
		logger: log.Named("clipboard"),
	}, nil
}

// Copy runs the clipboard command with the transcript bytes on stdin.
// The text is passed through untouched.
func (c *Command) Copy(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		tail := strings.TrimSpace(stderr.String())
		if len(tail) > stderrTailBytes {
			tail = tail[len(tail)-stderrTailBytes:]
		}
		return fmt.Errorf("failed to run %s: %w: %s", c.argv[0], err, tail)
	}

	c.logger.Info("Transcript copied to clipboard",
		logger.String("command", strings.Join(c.argv, " ")),
		logger.Int("bytes", len(text)),
	)
	return nil
}

// SplitCommand splits a command string into argv, honoring single and
// double quotes so arguments with spaces survive.
func SplitCommand(raw string) ([]string, error) {
	var argv []string
	var cur strings.Builder
	var quote rune
	inToken := false

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				argv = append(argv, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in command %q", quote, raw)
	}
	if inToken {
		argv = append(argv, cur.String())
	}
	return argv, nil
}
