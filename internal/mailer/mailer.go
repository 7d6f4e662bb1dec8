package mailer

import (
	"context"
	"fmt"

	mailgun "github.com/mailgun/mailgun-go/v3"
)

// Mailer sends the donation receipt email. Delivery failures are logged
// by callers but never fail the donation itself.
type Mailer interface {
	SendReceipt(ctx context.Context, to, reference string, amountPence int64, animalName string) error
}

type MailgunMailer struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailgun(domain, apiKey, from string) *MailgunMailer {
	return &MailgunMailer{mg: mailgun.NewMailgun(domain, apiKey), from: from}
}

func (m *MailgunMailer) SendReceipt(ctx context.Context, to, reference string, amountPence int64, animalName string) error {
	subject := "Thank you for your donation"
	body := fmt.Sprintf(
		"Thank you for your donation of %s.\n\nYour payment reference is %s.",
		FormatPence(amountPence), reference,
	)
	if animalName != "" {
		body = fmt.Sprintf(
			"Thank you for your donation of %s to %s.\n\nYour payment reference is %s.",
			FormatPence(amountPence), animalName, reference,
		)
	}
	msg := m.mg.NewMessage(m.from, subject, body, to)
	_, _, err := m.mg.Send(ctx, msg)
	return err
}

// Noop is used when Mailgun is not configured (local dev, tests).
type Noop struct{}

func (Noop) SendReceipt(context.Context, string, string, int64, string) error { return nil }

// FormatPence renders a minor-unit amount as pounds, e.g. 1250 -> "£12.50".
func FormatPence(p int64) string {
	return fmt.Sprintf("£%d.%02d", p/100, p%100)
}
