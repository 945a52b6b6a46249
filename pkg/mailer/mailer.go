package mailer

import (
	"fmt"

	"github.com/sanjeebSubedi/Demake-Backend/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends account emails over SMTP. It lives in the worker process;
// the API only publishes events.
type Mailer struct {
	dialer *gomail.Dialer
	cfg    *config.MailConfig
}

func New(cfg *config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
	}
}

func (m *Mailer) SendVerificationEmail(to, username, token string) error {
	activationURL := fmt.Sprintf("http://%s/users/verify/%s", m.cfg.Domain, token)
	subject := fmt.Sprintf("Account Verification - %s", m.cfg.AppName)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Welcome to %s. Click the link below to verify your account:</p>
<p><a href="%s">Verify my account</a></p>
<p>The link expires soon, so don't wait too long.</p>`,
		username, m.cfg.AppName, activationURL)

	return m.send(to, subject, body)
}

func (m *Mailer) SendWelcomeEmail(to, username string) error {
	subject := fmt.Sprintf("Welcome - %s", m.cfg.AppName)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your %s account is verified. You can log in now.</p>`,
		username, m.cfg.AppName)

	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
