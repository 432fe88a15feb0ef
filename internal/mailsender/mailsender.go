package mailSender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/h-rawat/book-api/internal/config"
	"github.com/h-rawat/book-api/internal/models"
	"github.com/h-rawat/book-api/internal/rabbitmq"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	from   string
	dialer *gomail.Dialer
	sender gomail.Sender
}

type Option func(*Mailer)

// WithSender delivers through s instead of dialing the SMTP server.
func WithSender(s gomail.Sender) Option {
	return func(m *Mailer) {
		m.sender = s
	}
}

func New(cfg config.SMTP, opts ...Option) *Mailer {
	m := &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if m.sender != nil {
		return gomail.Send(m.sender, msg)
	}

	return m.dialer.DialAndSend(msg)
}

// Handler decodes queued notifications and mails them. Messages that can never
// be delivered are reported with rabbitmq.ErrDiscard.
func (m *Mailer) Handler(log *slog.Logger) rabbitmq.Handler {
	return func(_ context.Context, body []byte) error {
		const op = "mailSender.Handler"

		var msg models.Message
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("%s: %w: %v", op, rabbitmq.ErrDiscard, err)
		}

		if _, err := mail.ParseAddress(msg.Email); err != nil {
			return fmt.Errorf("%s: %w: bad recipient %q", op, rabbitmq.ErrDiscard, msg.Email)
		}

		if err := m.Send(msg.Email, msg.Subject, msg.HTML); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		log.Info("message sent successfully", slog.String("purpose", msg.Purpose))

		return nil
	}
}
