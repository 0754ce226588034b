package email

import (
	"context"
	"fmt"
	"time"
)

// Deliverer sends a one-time code to an email address out of band.
// Implementations are interchangeable (SMTP, Mailgun, SES) and selected by
// configuration at startup; callers never pick a transport themselves.
// Delivery is best-effort: a failure is reported but never rolls back the
// already-issued code.
type Deliverer interface {
	Deliver(ctx context.Context, to, code string) error
}

// Subject is the fixed subject line for OTP emails.
const Subject = "Your OTP Verification Code"

// TextBody renders the plain-text OTP email.
func TextBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(`Email OTP Verification

Your OTP verification code is: %s

This code will expire in %d minutes.

If you did not request this code, please ignore this email.

Regards,
Email OTP Verification Service
`, code, int(ttl.Minutes()))
}

// HTMLBody renders the HTML OTP email.
func HTMLBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 500px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
      .otp-code { font-size: 32px; font-weight: bold; text-align: center; letter-spacing: 5px; background-color: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0; color: #2c3e50; }
      .footer { font-size: 12px; color: #999; margin-top: 20px; }
    </style>
  </head>
  <body>
    <div class="container">
      <h2>Email OTP Verification</h2>
      <p>Your OTP verification code is:</p>
      <div class="otp-code">%s</div>
      <p style="color: #e74c3c; font-weight: bold;">This code will expire in %d minutes.</p>
      <p>If you did not request this code, please ignore this email.</p>
      <div class="footer">
        <p>Email OTP Verification Service</p>
      </div>
    </div>
  </body>
</html>
`, code, int(ttl.Minutes()))
}
