// Package mail delivers invite emails. The Sender interface is the
// boundary the dispatch service talks to; the SMTP implementation lives
// behind it so tests can substitute an in-memory sender.
package mail

import "context"

// Message is a fully rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message. Implementations must treat each call
// independently; a failed delivery must not affect later calls.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
