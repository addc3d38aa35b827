package main

import (
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"
)

// Mailer delivers the password-reset link to an account's registered
// address. Dispatch failures surface to the caller; nothing is retried.
type Mailer interface {
	SendResetLink(email, link string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func newSMTPMailer(host string, port int, user, password, from string) *smtpMailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *smtpMailer) SendResetLink(email, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<h2>Password Reset</h2>
<p>Click the link below to reset your password:</p>
<a href="%s">Reset Password</a>
<p>This link will expire in 1 hour.</p>`,
		link,
	))
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error DialAndSend: %w", err)
	}
	return nil
}

func resetLink(baseURL, token, email string) string {
	return fmt.Sprintf(
		"%s/reset-password?token=%s&email=%s",
		baseURL, url.QueryEscape(token), url.QueryEscape(email),
	)
}
