package mailer

import (
	"context"
	"log"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message. Delivery is best effort; callers decide
// whether a failure matters.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Noop logs messages instead of sending them. It is used when SMTP is not
// configured, e.g. in local development.
type Noop struct {
	logger *log.Logger
}

func NewNoop(logger *log.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) Send(_ context.Context, msg Message) error {
	if n != nil && n.logger != nil {
		n.logger.Printf("[Mail] SMTP disabled, dropping message to=%s subject=%q", msg.To, msg.Subject)
	}
	return nil
}
