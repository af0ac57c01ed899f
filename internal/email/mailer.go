package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/usof-platform/usof-backend/internal/config"
	"github.com/usof-platform/usof-backend/internal/logging"
)

// Mailer delivers transactional mail (email verification, password reset)
// over plain SMTP.
type Mailer struct {
	cfg config.SMTPConfig
	log *zap.Logger
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: logging.GetLogger(),
	}
}

// SendVerificationEmail mails the registration confirmation link.
func (m *Mailer) SendVerificationEmail(to, link string) error {
	body := fmt.Sprintf("Confirm your email: %s", link)
	return m.send(to, "Registration Confirmation", body)
}

// SendPasswordResetEmail mails the password reset link.
func (m *Mailer) SendPasswordResetEmail(to, link string) error {
	body := fmt.Sprintf("Please use the following link to reset your password: %s", link)
	return m.send(to, "Password Reset", body)
}

func (m *Mailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	m.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
