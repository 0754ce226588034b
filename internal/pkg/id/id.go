package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs sort lexicographically by creation
// time, which makes them usable directly as the OTP ledger's range key:
// a descending query yields most-recent-first without a separate timestamp index.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
