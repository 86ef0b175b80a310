package email

import "context"

// Provider delivers transactional mail. The server never blocks a request
// on delivery; callers send from a goroutine.
type Provider interface {
	SendRecovery(ctx context.Context, to string, token string) error
}
