package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/h-rawat/book-api/internal/models"
)

const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
)

type Publisher interface {
	SendMessage(ctx context.Context, msg models.Message) error
}

var (
	registrationTmpl = template.Must(template.New("registration").Parse(
		`<p>Hello {{.Email}},</p>
<p>Your account has been created. You can now sign in with this address.</p>`))

	resetTmpl = template.Must(template.New("reset").Parse(
		`<p>Hello {{.Email}},</p>
<p>A password reset was requested for your account. Use the token below before {{.ExpiresAt}}.</p>
<p><code>{{.Token}}</code></p>
{{if .Link}}<p>Or open <a href="{{.Link}}">{{.Link}}</a> to choose a new password.</p>
{{end}}
<p>If you did not request this, you can ignore this message.</p>`))
)

// Notifier renders account e-mails and hands them to a Publisher.
type Notifier struct {
	log          *slog.Logger
	pub          Publisher
	resetPageURL string
}

// New returns a Notifier. resetPageURL is the client page that submits the
// reset form; when empty the reset e-mail carries the token only.
func New(log *slog.Logger, pub Publisher, resetPageURL string) *Notifier {
	return &Notifier{
		log:          log,
		pub:          pub,
		resetPageURL: strings.TrimSpace(resetPageURL),
	}
}

func (n *Notifier) RegistrationConfirmed(ctx context.Context, email string) error {
	const op = "notification.RegistrationConfirmed"

	body, err := render(registrationTmpl, map[string]any{"Email": email})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return n.send(ctx, op, models.Message{
		Email:   email,
		Subject: "Registration successful",
		HTML:    body,
		Purpose: PurposeRegistration,
	})
}

func (n *Notifier) PasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error {
	const op = "notification.PasswordReset"

	body, err := render(resetTmpl, map[string]any{
		"Email":     email,
		"Token":     token,
		"Link":      n.resetLink(token),
		"ExpiresAt": expiresAt.UTC().Format(time.RFC1123),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return n.send(ctx, op, models.Message{
		Email:   email,
		Subject: "Password reset",
		HTML:    body,
		Purpose: PurposePasswordReset,
	})
}

func (n *Notifier) send(ctx context.Context, op string, msg models.Message) error {
	if err := n.pub.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n.log.Debug("notification queued", slog.String("op", op), slog.String("purpose", msg.Purpose))

	return nil
}

func (n *Notifier) resetLink(token string) string {
	if n.resetPageURL == "" {
		return ""
	}

	u, err := url.Parse(n.resetPageURL)
	if err != nil {
		n.log.Warn("invalid reset page url, sending token only", slog.String("url", n.resetPageURL))
		return ""
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String()
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
