package mailer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/janiskrasemann/scryfetch/internal/renderer"
	"github.com/resend/resend-go/v3"
)

type Mailer struct {
	from   string
	to     string
	client *resend.Client
	now    func() time.Time
}

func New(from, to, apiKey string) *Mailer {
	return &Mailer{
		from:   from,
		to:     to,
		client: resend.NewClient(apiKey),
		now:    time.Now,
	}
}

// Subject is the digest email subject for the given edition and day.
func Subject(edition int, day time.Time) string {
	return fmt.Sprintf("Scryfall watchlist #%d: %s", edition, day.Format("Jan 2, 2006"))
}

func (m *Mailer) Send(ctx context.Context, email *renderer.RenderedEmail, edition int) error {
	if m.from == "" || m.to == "" {
		return fmt.Errorf("email from/to not configured")
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		Subject: Subject(edition, m.now()),
		Html:    email.HTML,
		Text:    email.Text,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("sending email via resend: %w", err)
	}

	log.Printf("email sent: %s", sent.Id)
	return nil
}
