// Package mail sends best-effort notification emails over SMTP. When no
// username is configured the mailer silently does nothing, matching how the
// site behaves in development.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password}
}

func (m *SMTPMailer) Enabled() bool {
	return m != nil && m.username != ""
}

// NotifyAddress is where contact-form notifications land: the configured
// sending account itself.
func (m *SMTPMailer) NotifyAddress() string {
	return m.username
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.username)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.username, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}
