// Package mail delivers estimate summaries by email.
package mail

import "context"

// Attachment is a file attached to a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a plain-text email with optional attachments.
type Message struct {
	From        string
	FromName    string
	To          string
	CC          []string
	Subject     string
	Text        string
	Attachments []Attachment
}

// Sender defines the interface for delivering messages.
// This interface enables dependency injection and testing with mock implementations.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
