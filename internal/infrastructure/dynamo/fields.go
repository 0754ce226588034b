package dynamo

// DynamoDB attribute names used in expressions across the repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEmail    = "email"
	fieldOTPID    = "otp_id"
	fieldConsumed = "consumed"
	fieldVerified = "verified"
)
