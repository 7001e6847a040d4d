package services

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers an email message.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPEmailService sends mail over SMTP using gomail.
type SMTPEmailService struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPEmailService creates an email service configured from the environment.
func NewSMTPEmailService() *SMTPEmailService {
	port := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &port)
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	return &SMTPEmailService{
		Host: os.Getenv("SMTP_HOST"),
		Port: port,
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: from,
	}
}

func (s *SMTPEmailService) Send(to, subject, body string) error {
	if s.Host == "" {
		return fmt.Errorf("SMTP host not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
