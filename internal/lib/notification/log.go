package notification

import (
	"context"
	"log/slog"

	"github.com/h-rawat/book-api/internal/models"
)

// LogPublisher writes messages to the logger instead of a queue. Used when no broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) SendMessage(_ context.Context, msg models.Message) error {
	p.log.Info("notification",
		slog.String("to", msg.Email),
		slog.String("subject", msg.Subject),
		slog.String("purpose", msg.Purpose),
	)
	// Reset mails carry a live token.
	if msg.Purpose != PurposePasswordReset {
		p.log.Debug("notification body", slog.String("html", msg.HTML))
	}

	return nil
}
