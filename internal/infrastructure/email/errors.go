package email

import "errors"

// ErrDelivery marks a transport failure after a code was already issued.
// The boundary layer maps it to a delivery-specific response instead of the
// generic fault message; the ledger mutation is never rolled back.
var ErrDelivery = errors.New("email delivery failed")
