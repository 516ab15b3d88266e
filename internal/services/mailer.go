package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer is the outbound-mail collaborator. Handlers depend on the interface
// so tests can substitute a double.
type Mailer interface {
	SendOTPEmail(ctx context.Context, toName, toEmail, code string) error
	SendContactNotification(ctx context.Context, name, email, message string) error
}

type SendGridMailer struct {
	client       *sendgrid.Client
	fromName     string
	fromEmail    string
	supportEmail string
}

func NewSendGridMailer(apiKey, fromName, fromEmail, supportEmail string) *SendGridMailer {
	return &SendGridMailer{
		client:       sendgrid.NewSendClient(apiKey),
		fromName:     fromName,
		fromEmail:    fromEmail,
		supportEmail: supportEmail,
	}
}

func (m *SendGridMailer) SendOTPEmail(ctx context.Context, toName, toEmail, code string) error {
	subject := "Your password reset code"
	plain := fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is %s. It expires in 15 minutes.\n\nIf you did not request this, ignore this email.\n",
		toName, code,
	)
	html := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your password reset code is <strong>%s</strong>. It expires in 15 minutes.</p><p>If you did not request this, ignore this email.</p>",
		toName, code,
	)

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	return m.send(ctx, mail.NewSingleEmail(from, subject, to, plain, html))
}

func (m *SendGridMailer) SendContactNotification(ctx context.Context, name, email, message string) error {
	subject := fmt.Sprintf("New contact form submission from %s", name)
	plain := fmt.Sprintf("From: %s <%s>\n\n%s\n", name, email, message)

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail("", m.supportEmail)
	msg := mail.NewSingleEmail(from, subject, to, plain, "")
	msg.SetReplyTo(mail.NewEmail(name, email))
	return m.send(ctx, msg)
}

func (m *SendGridMailer) send(ctx context.Context, msg *mail.SGMailV3) error {
	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid mail send http %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
