package mailgun

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/email-otp-api/internal/config"
	"github.com/email-otp-api/internal/infrastructure/email"
)

const defaultBaseURL = "https://api.mailgun.net/v3"

// Sender delivers OTP emails through the Mailgun HTTP API.
type Sender struct {
	apiKey  string
	domain  string
	from    string
	ttl     time.Duration
	baseURL string
	client  *http.Client
}

func NewSender(cfg *config.Config) (*Sender, error) {
	if cfg.MailgunAPIKey == "" || cfg.MailgunDomain == "" {
		return nil, fmt.Errorf("MAILGUN_API_KEY and MAILGUN_DOMAIN must be set")
	}
	return &Sender{
		apiKey:  cfg.MailgunAPIKey,
		domain:  cfg.MailgunDomain,
		from:    cfg.SenderEmail,
		ttl:     cfg.OTPTTL,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *Sender) Deliver(ctx context.Context, to, code string) error {
	form := url.Values{}
	form.Set("from", s.from)
	form.Set("to", to)
	form.Set("subject", email.Subject)
	form.Set("html", email.HTMLBody(code, s.ttl))
	form.Set("text", email.TextBody(code, s.ttl))

	endpoint := fmt.Sprintf("%s/%s/messages", s.baseURL, s.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build mailgun request: %w", err)
	}
	req.SetBasicAuth("api", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailgun request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mailgun API error: %d - %s", resp.StatusCode, string(body))
	}
	return nil
}
