// internal/services/email_sender.go
package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/config"
)

type EmailMessage struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// EmailSender delivers rendered messages.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// NewEmailSender prefers SendGrid, then SMTP, and falls back to logging the
// message when neither is configured.
func NewEmailSender(cfg config.EmailConfig) EmailSender {
	switch {
	case cfg.SendGridAPIKey != "":
		return &SendGridSender{client: sendgrid.NewSendClient(cfg.SendGridAPIKey), fromName: cfg.FromName, fromEmail: cfg.FromEmail}
	case cfg.SMTPHost != "":
		return &SMTPSender{cfg: cfg}
	default:
		return &LogSender{}
	}
}

type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	for _, addr := range msg.To {
		if err := ctx.Err(); err != nil {
			return err
		}
		message := mail.NewSingleEmail(from, msg.Subject, mail.NewEmail("", addr), msg.Text, msg.HTML)
		response, err := s.client.Send(message)
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", addr, err)
		}
		if response.StatusCode >= 400 {
			logrus.WithFields(logrus.Fields{
				"status": response.StatusCode,
				"body":   response.Body,
				"to":     addr,
			}).Error("sendgrid returned error status")
			return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
		}
	}
	return nil
}

type SMTPSender struct {
	cfg config.EmailConfig
}

func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := msg.HTML
	contentType := "text/html"
	if body == "" {
		body = msg.Text
		contentType = "text/plain"
	}

	header := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s; charset=UTF-8\r\n\r\n",
		s.cfg.FromName, s.cfg.FromEmail, strings.Join(msg.To, ", "), msg.Subject, contentType)

	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	return smtp.SendMail(addr, auth, s.cfg.FromEmail, msg.To, []byte(header+body))
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg EmailMessage) error {
	logrus.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Email delivery not configured, message logged")
	logrus.Debug(msg.Text)
	return nil
}
