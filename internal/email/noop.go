package email

import (
	"context"

	"jobforge_backend/internal/logger"
)

// NoopProvider logs instead of sending. Used when SMTP is not configured.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) SendRecovery(_ context.Context, to string, token string) error {
	logger.Info("recovery mail suppressed, smtp not configured", "to", to, "token", token)
	return nil
}
