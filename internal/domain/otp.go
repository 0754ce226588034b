package domain

import "time"

// OTPRecord is one entry in the append-only OTP ledger.
// PK: email, SK: otp_id (ULID — sortable by creation time, so a descending
// query returns the most recent record first).
//
// A record is "active" while Consumed is false. Consumption is the only
// mutation ever applied: either the code was used, or a newer issuance
// superseded it. Records are never deleted; expiry is enforced by comparing
// ExpiresAt against the clock at verification time.
type OTPRecord struct {
	Email     string    `json:"email" dynamodbav:"email"`
	OTPID     string    `json:"otp_id" dynamodbav:"otp_id"`
	Code      string    `json:"-" dynamodbav:"code"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds
	Consumed  bool      `json:"consumed" dynamodbav:"consumed"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Expired reports whether the record's validity window has passed at now.
func (r *OTPRecord) Expired(now time.Time) bool {
	return now.Unix() > r.ExpiresAt
}
