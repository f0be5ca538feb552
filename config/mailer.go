package config

import (
	"context"
	"crypto/tls"
	"errors"
	"strings"
	"sync"
	"time"

	mail "github.com/go-mail/mail/v2"
)

// ErrMailerNotConfigured is returned when SMTP_HOST or SMTP_FROM is missing.
var ErrMailerNotConfigured = errors.New("smtp not configured (SMTP_HOST/SMTP_FROM)")

// SMTPMailer sends multipart (text + html) messages through one SMTP relay.
// The dialer is built on first use and shared for the life of the process.
type SMTPMailer struct {
	host          string
	port          int
	user          string
	pass          string
	from          string
	skipTLSVerify bool
	timeout       time.Duration

	once   sync.Once
	dialer *mail.Dialer
}

// NewSMTPMailer captures the SMTP settings; no connection is made until Send.
func NewSMTPMailer(cfg *Config) *SMTPMailer {
	return &SMTPMailer{
		host:          cfg.SMTPHost,
		port:          cfg.SMTPPort,
		user:          cfg.SMTPUser,
		pass:          cfg.SMTPPass,
		from:          cfg.SMTPFrom,
		skipTLSVerify: cfg.SMTPSkipTLSVerify,
		timeout:       cfg.SMTPTimeout,
	}
}

// Configured reports whether the mailer has enough settings to send.
func (m *SMTPMailer) Configured() bool {
	return strings.TrimSpace(m.host) != "" && strings.TrimSpace(m.from) != ""
}

func (m *SMTPMailer) getDialer() *mail.Dialer {
	m.once.Do(func() {
		d := mail.NewDialer(m.host, m.port, m.user, m.pass)

		// STARTTLS is mandatory on 587 (Gmail/Office365 style relays).
		d.StartTLSPolicy = mail.MandatoryStartTLS
		d.TLSConfig = &tls.Config{
			ServerName:         m.host,
			InsecureSkipVerify: m.skipTLSVerify, // dev only
		}
		if m.timeout > 0 {
			d.Timeout = m.timeout
		}
		// one attempt per message, callers decide about retries
		d.RetryFailure = false
		m.dialer = d
	})
	return m.dialer
}

// Send delivers a single message to one recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, text, html string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("recipient address is required")
	}
	if !m.Configured() {
		return ErrMailerNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if strings.TrimSpace(html) != "" {
		msg.AddAlternative("text/html", html)
	}

	return m.getDialer().DialAndSend(msg)
}
