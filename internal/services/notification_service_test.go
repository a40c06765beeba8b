package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/licensing"
)

type recordingSender struct {
	sent []EmailMessage
}

func (r *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	r.sent = append(r.sent, msg)
	return nil
}

func notificationConfig(recipients ...string) *config.Config {
	return &config.Config{
		Frontend: config.FrontendConfig{BaseURL: "https://licensing.example.so/"},
		Email:    config.EmailConfig{NotifyEmails: recipients},
	}
}

func TestSendPasswordResetEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewNotificationService(sender, notificationConfig())

	require.NoError(t, svc.SendPasswordResetEmail(context.Background(), "a@b.so", "", "tok123"))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"a@b.so"}, msg.To)
	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Contains(t, msg.HTML, "https://licensing.example.so/reset-password/tok123")
	assert.Contains(t, msg.Text, "Hi there")
}

func TestSendExpiryDigest(t *testing.T) {
	expiring := []ExpiringLicense{
		{LicenseRefID: "WTMB-2501-1111111111", CompanyName: "A & B Mining", ExpireDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), DaysLeft: 2, Urgency: licensing.UrgencyCritical},
	}

	t.Run("no recipients", func(t *testing.T) {
		sender := &recordingSender{}
		require.NoError(t, NewNotificationService(sender, notificationConfig()).SendExpiryDigest(context.Background(), expiring))
		assert.Empty(t, sender.sent)
	})

	t.Run("nothing expiring", func(t *testing.T) {
		sender := &recordingSender{}
		require.NoError(t, NewNotificationService(sender, notificationConfig("ops@mining.gov")).SendExpiryDigest(context.Background(), nil))
		assert.Empty(t, sender.sent)
	})

	t.Run("sends digest", func(t *testing.T) {
		sender := &recordingSender{}
		svc := NewNotificationService(sender, notificationConfig("ops@mining.gov", "dg@mining.gov"))
		require.NoError(t, svc.SendExpiryDigest(context.Background(), expiring))

		require.Len(t, sender.sent, 1)
		msg := sender.sent[0]
		assert.Equal(t, []string{"ops@mining.gov", "dg@mining.gov"}, msg.To)
		assert.Equal(t, "1 mining license(s) need attention", msg.Subject)
		assert.Contains(t, msg.HTML, "WTMB-2501-1111111111")
		assert.Contains(t, msg.HTML, "A &amp; B Mining")
		assert.Contains(t, msg.HTML, "2025-06-03")
		assert.Contains(t, msg.HTML, "https://licensing.example.so/licenses")
	})
}

func TestNewEmailSenderSelection(t *testing.T) {
	assert.IsType(t, &SendGridSender{}, NewEmailSender(config.EmailConfig{SendGridAPIKey: "SG.x"}))
	assert.IsType(t, &SMTPSender{}, NewEmailSender(config.EmailConfig{SMTPHost: "smtp.example.so"}))
	assert.IsType(t, &LogSender{}, NewEmailSender(config.EmailConfig{}))
	assert.NoError(t, LogSender{}.Send(context.Background(), EmailMessage{To: []string{"x@y.so"}, Subject: "s"}))
}
