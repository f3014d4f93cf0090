package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/mail"
)

// MockSender is a mock implementation of mail.Sender for testing.
// It records every message instead of delivering it.
type MockSender struct {
	mu sync.Mutex
	// MockError is the error to return from Send
	MockError error
	// Sent holds the messages passed to Send, including failed ones
	Sent []mail.Message
}

// NewMockSender creates a mock sender that accepts every message.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records msg and returns the configured MockError.
func (m *MockSender) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return m.MockError
}

// WithError configures the mock to return the specified error.
func (m *MockSender) WithError(err error) *MockSender {
	m.MockError = err
	return m
}

// SendCount returns how many times Send was called.
func (m *MockSender) SendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// LastMessage returns the most recent message passed to Send.
func (m *MockSender) LastMessage() (mail.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mail.Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
