package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yegors/scribe/pkg/logger"
)

// KeyWait blocks until a single key arrives on the input stream
type KeyWait struct {
	in     *os.File
	logger *logger.Logger
}

// NewKeyWait creates a key waiter reading from the given input, normally
// os.Stdin.
func NewKeyWait(in *os.File, log *logger.Logger) *KeyWait {
	return &KeyWait{
		in:     in,
		logger: log.Named("terminal"),
	}
}

// Await blocks until one byte is read from the input. When the input is a
// terminal it is switched to raw mode first, so a single keystroke gets
// through without waiting for a newline; the previous terminal state is
// restored before returning. On non-terminal input EOF also counts as the
// signal, so piped stdin does not wedge the pipeline. There is no timeout.
func (k *KeyWait) Await() error {
	fd := int(k.in.Fd())

	if isatty.IsTerminal(k.in.Fd()) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer func() {
			if err := term.Restore(fd, oldState); err != nil {
				k.logger.Warn("Failed to restore terminal state", logger.Error(err))
			}
		}()
	} else {
		k.logger.Debug("Input is not a terminal, waiting for one byte or EOF")
	}

	buf := make([]byte, 1)
	if _, err := k.in.Read(buf); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read keypress: %w", err)
	}
	return nil
}
