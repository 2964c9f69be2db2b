package services

import (
	"fmt"

	"github.com/ArowuTest/gaspay-backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

var _ session.CodeVerifier = (*OTPVerifier)(nil)

// OTPVerifier checks codes against a fixed code kept only as a bcrypt hash
type OTPVerifier struct {
	hash []byte
}

// NewOTPVerifier hashes code with the given bcrypt cost
func NewOTPVerifier(code string, cost int) (*OTPVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash otp: %w", err)
	}
	return &OTPVerifier{hash: hash}, nil
}

// Verify reports whether code matches
func (v *OTPVerifier) Verify(code string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(code)) == nil
}
