package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender dispatches a single email. The auth service depends on this
// interface so reset-mail delivery failures can be simulated in tests.
type Sender interface {
	Send(ctx context.Context, to, subject, text string) error
}

// Mailgun implements Sender on top of the Mailgun API.
type Mailgun struct {
	Domain string
	APIKey string
	From   string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, From: sender}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.From, subject, text, to)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
