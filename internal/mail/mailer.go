// Package mail sends the contact-form notification and confirmation
// emails over SMTP.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	domainerr "github.com/verluna/site/internal/domain/errors"
)

// ContactForm is a validated contact-form submission.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// Mailer sends the two outbound messages a contact submission triggers.
type Mailer interface {
	// SendContactNotification notifies the ops inbox about a new inquiry.
	SendContactNotification(form ContactForm) error
	// SendContactConfirmation acknowledges receipt to the sender.
	SendContactConfirmation(form ContactForm) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string // ops inbox for notifications
	SiteURL  string
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendContactNotification(form ContactForm) error {
	subject := fmt.Sprintf("New Contact: %s from %s", form.Name, orNA(form.Company))
	body, err := renderNotification(form)
	if err != nil {
		return err
	}
	return m.send([]string{m.cfg.To}, subject, body)
}

func (m *SMTPMailer) SendContactConfirmation(form ContactForm) error {
	body, err := renderConfirmation(form, m.cfg.SiteURL)
	if err != nil {
		return err
	}
	return m.send([]string{form.Email}, "We received your message - Verluna", body)
}

func (m *SMTPMailer) send(to []string, subject, htmlBody string) error {
	if m.cfg.Host == "" {
		return domainerr.UpstreamError{Service: "mail", Kind: domainerr.UpstreamNotConfigured}
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.cfg.From + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := smtp.SendMail(addr, auth, envelopeFrom(m.cfg.From), to, []byte(msg.String())); err != nil {
		return domainerr.UpstreamError{Service: "mail", Kind: domainerr.UpstreamRejected, Err: err}
	}
	return nil
}

// envelopeFrom strips a display name, "Verluna <x@y>" -> "x@y".
func envelopeFrom(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		return strings.TrimRight(from[i+1:], ">")
	}
	return from
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
