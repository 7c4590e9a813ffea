package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends a plain-text message to a single recipient. The transport is a
// collaborator; the auth workflow only cares that the send completed or
// failed.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through an SMTP relay (gmail in the default
// deployment) using gomail.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPMailerFromEnv builds a mailer from SMTP_* / EMAIL_* environment
// variables.
func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	port := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP port: %v", err)
		}
		port = p
	}

	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")
	if user == "" || pass == "" {
		return nil, fmt.Errorf("missing EMAIL_USER or EMAIL_PASS configuration")
	}

	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = fmt.Sprintf("\"moveKenya\" <%s>", user)
	}

	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}, nil
}

// Send delivers a plain-text message and blocks until the relay accepts or
// rejects it.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
