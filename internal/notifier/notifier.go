// Package notifier publishes registration lifecycle events to a message
// queue so an out-of-band worker (mailer, webhook fan-out) can pick them up.
// Publishing is best-effort: the registration workflow never fails because
// a notification could not be queued.
package notifier

import "context"

type Message struct {
	RegistrationID string `json:"registration_id"`
	EventSlug      string `json:"event_slug"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Status         string `json:"status"`
}

type Notifier interface {
	Publish(ctx context.Context, msg Message) error
	Close()
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(ctx context.Context, msg Message) error { return nil }

func (Nop) Close() {}
