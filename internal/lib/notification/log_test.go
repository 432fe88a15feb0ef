package notification

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPublisher_NeverLogsResetToken(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	n := New(log, NewLogPublisher(log), "http://localhost:5173/reset-password")
	ctx := context.Background()

	require.NoError(t, n.PasswordReset(ctx, "a@b.com", "cafebabe1234", time.Now().Add(time.Hour)))
	assert.NotContains(t, buf.String(), "cafebabe1234")
	assert.Contains(t, buf.String(), "purpose="+PurposePasswordReset)

	buf.Reset()

	require.NoError(t, n.RegistrationConfirmed(ctx, "a@b.com"))
	assert.Contains(t, buf.String(), "notification body")
}
