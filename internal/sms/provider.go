package sms

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// Provider sends SMS messages to phone numbers in E.164 format.
type Provider interface {
	Send(ctx context.Context, toPhone, body string) error
}

// Config holds SMS gateway configuration
type Config struct {
	Provider   string // twilio, mock
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NewProvider creates an SMS provider based on configuration
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "twilio":
		return NewTwilioProvider(cfg), nil
	case "mock", "":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported sms provider: %s", cfg.Provider)
	}
}

// GenerateCode returns a random 6-digit verification code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
