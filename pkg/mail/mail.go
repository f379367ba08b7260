// Package mail provides a fluent SMTP mailer.
//
// Usage:
//
//	mail.To("user@example.com").
//	    Subject("Confirm your account").
//	    Body("<p>Hello</p>").
//	    Send()
package mail

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/Kantor012/Product-Catalog/config"
)

// SMTP holds connection credentials (populated from env/config).
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func defaultSMTP() SMTP {
	port, err := strconv.Atoi(config.Get("MAIL_PORT", "587"))
	if err != nil {
		port = 587
	}
	return SMTP{
		Host:     config.Get("MAIL_HOST", "smtp.mailtrap.io"),
		Port:     port,
		Username: config.Get("MAIL_USERNAME", ""),
		Password: config.Get("MAIL_PASSWORD", ""),
		From:     config.Get("MAIL_FROM", "hello@product-catalog.app"),
		FromName: config.Get("MAIL_FROM_NAME", "Product Catalog"),
	}
}

// Message is a fluent builder for an email.
type Message struct {
	to      []string
	cc      []string
	subject string
	body    string
	isHTML  bool
	smtpCfg SMTP
}

// To sets the primary recipients and starts the builder.
func To(addresses ...string) *Message {
	return &Message{
		to:      addresses,
		isHTML:  true,
		smtpCfg: defaultSMTP(),
	}
}

// CC adds CC recipients.
func (m *Message) CC(addresses ...string) *Message {
	m.cc = append(m.cc, addresses...)
	return m
}

// Subject sets the email subject.
func (m *Message) Subject(s string) *Message {
	m.subject = s
	return m
}

// Body sets the email body (HTML by default).
func (m *Message) Body(html string) *Message {
	m.body = html
	m.isHTML = true
	return m
}

// Text sets a plain-text body.
func (m *Message) Text(text string) *Message {
	m.body = text
	m.isHTML = false
	return m
}

// Via overrides the SMTP configuration (useful in tests).
func (m *Message) Via(cfg SMTP) *Message {
	m.smtpCfg = cfg
	return m
}

// Send delivers the message over SMTP.
func (m *Message) Send() error {
	if len(m.to) == 0 {
		return fmt.Errorf("mail: no recipients")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.smtpCfg.From, m.smtpCfg.FromName)
	msg.SetHeader("To", m.to...)
	if len(m.cc) > 0 {
		msg.SetHeader("Cc", m.cc...)
	}
	msg.SetHeader("Subject", m.subject)
	if m.isHTML {
		msg.SetBody("text/html", m.body)
	} else {
		msg.SetBody("text/plain", m.body)
	}

	d := gomail.NewDialer(m.smtpCfg.Host, m.smtpCfg.Port, m.smtpCfg.Username, m.smtpCfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}
