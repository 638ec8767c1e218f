package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/yegors/scribe/internal/config"
	"github.com/yegors/scribe/pkg/logger"
)

// Notifier sends desktop notifications about session outcomes
type Notifier struct {
	config config.NotificationsConfig
	logger *logger.Logger
}

// New creates a new notifier
func New(cfg config.NotificationsConfig, log *logger.Logger) *Notifier {
	return &Notifier{
		config: cfg,
		logger: log.Named("notify"),
	}
}

// Done announces a finished session. Notification failures are logged and
// swallowed; a missing notification daemon must never fail the pipeline.
func (n *Notifier) Done(transcriptBytes int) {
	if !n.config.Enabled {
		return
	}
	msg := fmt.Sprintf("Transcript copied to clipboard (%d bytes)", transcriptBytes)
	if err := beeep.Notify("scribe", msg, ""); err != nil {
		n.logger.Warn("Failed to send notification", logger.Error(err))
	}
}

// Failed announces a failed session
func (n *Notifier) Failed(cause error) {
	if !n.config.Enabled {
		return
	}
	if err := beeep.Alert("scribe", cause.Error(), ""); err != nil {
		n.logger.Warn("Failed to send notification", logger.Error(err))
	}
}
