package domain

// VerificationOutcome is the result of an OTP verification attempt.
// Outcomes are ordinary values, not errors: each one maps to different
// user-facing guidance, and callers must be able to tell them apart.
// Storage faults travel separately as errors.
type VerificationOutcome int

// The zero value is OutcomeNoActiveCode, never OutcomeAccepted, so a
// forgotten error check can't read as a successful verification.
const (
	OutcomeNoActiveCode VerificationOutcome = iota
	OutcomeExpired
	OutcomeMismatch
	OutcomeAccepted
)

var outcomeMessages = map[VerificationOutcome]string{
	OutcomeAccepted:     "Email verified successfully!",
	OutcomeNoActiveCode: "No active OTP found for this email. Please request a new OTP.",
	OutcomeExpired:      "OTP has expired. Please request a new OTP.",
	OutcomeMismatch:     "Invalid OTP. Please check and try again.",
}

// Message returns the fixed human-readable text for the outcome.
func (o VerificationOutcome) Message() string {
	return outcomeMessages[o]
}

// Accepted reports whether the verification succeeded.
func (o VerificationOutcome) Accepted() bool {
	return o == OutcomeAccepted
}
