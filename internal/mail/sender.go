package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/devanpatel28/codegrin-backend/internal/config"
)

// Sender delivers outbound mail over SMTP.
type Sender interface {
	Send(to, subject, htmlBody, replyTo string) error
}

type smtpSender struct {
	cfg config.EmailConfig
}

func NewSender(cfg config.EmailConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, htmlBody, replyTo string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromEmail, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
