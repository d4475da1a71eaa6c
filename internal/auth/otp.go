package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

// GenerateOTP returns a numeric code of the given length.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("otp length must be positive")
	}
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generating otp: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// OTPMatches compares in constant time and rejects expired codes.
func OTPMatches(stored, given string, expiry *time.Time, now time.Time) bool {
	if stored == "" || expiry == nil || now.After(*expiry) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
