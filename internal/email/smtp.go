package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"jobforge_backend/internal/config"
)

type SMTPProvider struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

func (p *SMTPProvider) SendRecovery(ctx context.Context, to string, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Account recovery")
	m.SetBody("text/plain", fmt.Sprintf(
		"A recovery was requested for your account.\n\n"+
			"Recovery token: %s\n\n"+
			"The token expires in 30 minutes. If you did not request this, ignore this message.",
		token,
	))

	done := make(chan error, 1)
	go func() { done <- p.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send recovery mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
