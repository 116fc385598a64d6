package sms

import (
	"context"
	"sync"

	"smarthr_backend/internal/logger"
)

// SentMessage records a message handed to the mock provider.
type SentMessage struct {
	To   string
	Body string
}

// MockProvider logs messages instead of sending them. Used in development
// and in tests.
type MockProvider struct {
	mu       sync.Mutex
	messages []SentMessage
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(ctx context.Context, toPhone, body string) error {
	p.mu.Lock()
	p.messages = append(p.messages, SentMessage{To: toPhone, Body: body})
	p.mu.Unlock()

	logger.CtxInfo(ctx, "SMS (mock)", "to", toPhone, "body", body)
	return nil
}

// Messages returns a copy of everything sent so far.
func (p *MockProvider) Messages() []SentMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SentMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

// LastMessage returns the most recent message, if any.
func (p *MockProvider) LastMessage() (SentMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.messages) == 0 {
		return SentMessage{}, false
	}
	return p.messages[len(p.messages)-1], true
}
