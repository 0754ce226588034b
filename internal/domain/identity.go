package domain

import (
	"strings"
	"time"
)

// Identity tracks whether an email address has been proven.
// PK: email (normalized). Created lazily on first OTP request or successful
// verification; never deleted. Verified only ever moves false -> true.
type Identity struct {
	Email     string    `json:"email" dynamodbav:"email"`
	Verified  bool      `json:"verified" dynamodbav:"verified"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// NormalizeEmail lowercases and trims an email address. All storage keys and
// lookups go through this, so "A@X.com " and "a@x.com" are the same identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
