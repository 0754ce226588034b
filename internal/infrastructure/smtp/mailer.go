package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/email-otp-api/internal/config"
	"github.com/email-otp-api/internal/infrastructure/email"
)

// Sender delivers OTP emails over plain SMTP.
type Sender struct {
	host     string
	port     string
	from     string
	username string
	password string
	ttl      time.Duration
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SenderEmail,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		ttl:      cfg.OTPTTL,
	}
}

func (s *Sender) Deliver(_ context.Context, to, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s",
		s.from, to, email.Subject, email.HTMLBody(code, s.ttl))
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg))
}
