// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/config"
)

const resetTokenTTL = time.Hour

type NotificationService struct {
	sender EmailSender
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	HTML    string
	Text    string
}

func NewNotificationService(sender EmailSender, config *config.Config) *NotificationService {
	return &NotificationService{
		sender: sender,
		config: config,
	}
}

func (s *NotificationService) ResetLink(token string) string {
	return fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.config.Frontend.BaseURL, "/"), token)
}

func (s *NotificationService) SendPasswordResetEmail(ctx context.Context, email, name, token string) error {
	if name == "" {
		name = "there"
	}
	data := map[string]interface{}{
		"Name":      name,
		"ResetURL":  s.ResetLink(token),
		"ExpiresIn": "1 hour",
	}
	return s.send(ctx, "password_reset", []string{email}, data)
}

// SendExpiryDigest mails the list of licenses that are about to expire or
// recently expired to the configured recipients.
func (s *NotificationService) SendExpiryDigest(ctx context.Context, licenses []ExpiringLicense) error {
	recipients := s.config.Email.NotifyEmails
	if len(recipients) == 0 {
		logrus.Debug("No digest recipients configured, skipping expiry digest")
		return nil
	}
	if len(licenses) == 0 {
		return nil
	}

	data := map[string]interface{}{
		"Count":       len(licenses),
		"Licenses":    licenses,
		"GeneratedAt": time.Now().UTC().Format("2006-01-02"),
		"LicensesURL": strings.TrimRight(s.config.Frontend.BaseURL, "/") + "/licenses",
	}
	return s.send(ctx, "expiry_digest", recipients, data)
}

func (s *NotificationService) send(ctx context.Context, templateType string, to []string, data interface{}) error {
	tmpl := s.getEmailTemplate(templateType)

	htmlBody, err := s.renderTemplate(tmpl.HTML, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	textBody, err := renderText(tmpl.Text, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	subject, err := renderText(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render email subject: %w", err)
	}

	return s.sender.Send(ctx, EmailMessage{To: to, Subject: subject, Text: textBody, HTML: htmlBody})
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func renderText(templateStr string, data interface{}) (string, error) {
	tmpl, err := texttemplate.New("text").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"password_reset": {
			Subject: "Reset your password",
			HTML: `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #333;">Password Reset</h1>
    <p>Hi {{.Name}},</p>
    <p>Someone requested a password reset for your account. If this was you, click the button below to reset your password:</p>
    <p style="margin: 30px 0;"><a href="{{.ResetURL}}" style="background-color: #0070f3; color: white; padding: 12px 20px; text-decoration: none; border-radius: 5px;">Reset Password</a></p>
    <p>If you didn't request this, you can safely ignore this email.</p>
    <p>This link will expire in {{.ExpiresIn}}.</p>
    <p style="color: #666; font-size: 14px;">If the button doesn't work, copy and paste this URL into your browser:<br><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
  </body>
</html>`,
			Text: "Hi {{.Name}},\n\nReset your password here: {{.ResetURL}}\n\nThis link will expire in {{.ExpiresIn}}. If you didn't request this, ignore this email.\n",
		},
		"expiry_digest": {
			Subject: "{{.Count}} mining license(s) need attention",
			HTML: `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #333;">License expiry report ({{.GeneratedAt}})</h1>
    <table style="border-collapse: collapse; width: 100%;">
      <tr><th align="left">Reference</th><th align="left">Company</th><th align="left">Expires</th><th align="left">Days left</th><th align="left">Urgency</th></tr>
      {{range .Licenses}}<tr><td>{{.LicenseRefID}}</td><td>{{.CompanyName}}</td><td>{{.ExpireDate.Format "2006-01-02"}}</td><td>{{.DaysLeft}}</td><td>{{.Urgency}}</td></tr>
      {{end}}
    </table>
    <p><a href="{{.LicensesURL}}">Open the license register</a></p>
  </body>
</html>`,
			Text: "License expiry report ({{.GeneratedAt}})\n\n{{range .Licenses}}{{.LicenseRefID}}  {{.CompanyName}}  {{.ExpireDate.Format \"2006-01-02\"}}  {{.DaysLeft}} days  {{.Urgency}}\n{{end}}\n{{.LicensesURL}}\n",
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		HTML:    "<p>{{.}}</p>",
		Text:    "{{.}}",
	}
}
