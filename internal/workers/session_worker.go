package workers

import (
	"context"
	"time"

	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/repositories"
)

// SessionWorker sweeps expired session records so tokens for long-gone
// sessions stop occupying the table.
type SessionWorker struct {
	sessions repositories.SessionRepository
	interval time.Duration
}

func NewSessionWorker(sessions repositories.SessionRepository, interval time.Duration) *SessionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionWorker{sessions: sessions, interval: interval}
}

func (w *SessionWorker) Start(ctx context.Context) {
	go w.sweepExpired(ctx)
}

func (w *SessionWorker) sweepExpired(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session worker stopped")
			return
		case <-ticker.C:
			removed, err := w.sessions.DeleteExpired()
			if err != nil {
				logger.Error("expired session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("expired sessions removed", "count", removed)
			}
		}
	}
}
