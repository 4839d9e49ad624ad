// Package mail implements the outbound mail transport over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/newsroom-io/newsroom-api/internal/core/ports"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
}

// SMTPMailer sends mail through a single SMTP relay. Delivery is treated
// as best-effort by callers; the mailer itself reports errors normally.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a single message.
func (m *SMTPMailer) Send(_ context.Context, msg ports.Message) error {
	if len(msg.To) == 0 {
		return nil
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	payload := buildPayload(msg)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := smtp.SendMail(addr, auth, msg.From, msg.To, payload); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendBatch delivers each message independently. The first error is
// returned after attempting the full batch, so one bad recipient does not
// starve the rest.
func (m *SMTPMailer) SendBatch(ctx context.Context, msgs []ports.Message) error {
	var firstErr error
	for _, msg := range msgs {
		if err := m.Send(ctx, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildPayload(msg ports.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
