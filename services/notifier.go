package services

import "context"

// Notifier is the outbound email gateway. Send returns an error on failure
// and must not retry on its own.
type Notifier interface {
	Send(ctx context.Context, to, subject, text, html string) error
}
