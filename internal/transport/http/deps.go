package http

import (
	"github.com/email-otp-api/internal/application/otp"
	"github.com/email-otp-api/internal/infrastructure/email"
)

// Deps holds all infrastructure dependencies for the router.
// The store fields are the narrow interfaces the OTP service consumes, so
// tests can wire fakes without touching DynamoDB.
type Deps struct {
	IdentityRepo otp.IdentityStore
	OTPRepo      otp.OTPStore
	Deliverer    email.Deliverer
}
