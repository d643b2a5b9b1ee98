package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send an email via an external
// provider.
type SendRequest struct {
	To      []string // recipient addresses
	From    string   // sender address; empty uses the provider default
	Subject string
	HTML    string // HTML body
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // provider's message ID for tracking
	SentAt    time.Time // when the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
