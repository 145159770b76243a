// ABOUTME: Outbound mail through the Gmail API
// ABOUTME: Uses the same OAuth token as the contacts sheet fetch
package web

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"
)

// Mailer sends plain-text email on behalf of the deployment.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
}

// GmailMailer sends through the authenticated user's Gmail account.
type GmailMailer struct {
	svc  *gmail.Service
	from string
}

// NewGmailMailer creates a mailer sending as the given address.
func NewGmailMailer(svc *gmail.Service, from string) *GmailMailer {
	return &GmailMailer{svc: svc, from: from}
}

// Send builds an RFC 822 message and sends it via users.messages.send.
func (m *GmailMailer) Send(ctx context.Context, to, subject, text string) error {
	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, text)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := m.svc.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
