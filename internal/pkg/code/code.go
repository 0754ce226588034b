package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const digits = "0123456789"

// New generates a numeric one-time code of exactly n digits, drawing each
// position independently and uniformly from crypto/rand. Leading zeros are
// significant, so the result is a string, never an integer.
func New(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(digits)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate otp code: %w", err)
		}
		b[i] = digits[idx.Int64()]
	}
	return string(b), nil
}
