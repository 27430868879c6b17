package usecase

import (
	"context"
	"log/slog"
	"time"
)

// DefaultCleanupInterval is used when a Janitor is created with a non-positive interval.
const DefaultCleanupInterval = time.Minute

// Janitor periodically purges expired tokens from a TokenStore.
type Janitor struct {
	store    TokenStore
	interval time.Duration
	logger   *slog.Logger
}

// NewJanitor creates a janitor running CleanupExpired every interval.
func NewJanitor(store TokenStore, interval time.Duration, logger *slog.Logger) *Janitor {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &Janitor{store: store, interval: interval, logger: logger}
}

// Start runs the cleanup loop until ctx is cancelled and returns ctx.Err().
func (j *Janitor) Start(ctx context.Context) error {
	if j.logger != nil {
		j.logger.Info("starting token store janitor", slog.Duration("interval", j.interval))
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if j.logger != nil {
				j.logger.Info("stopping token store janitor")
			}
			return ctx.Err()
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single cleanup pass and returns the number of purged tokens.
func (j *Janitor) RunOnce(ctx context.Context) int {
	purged, err := j.store.CleanupExpired(ctx)
	if err != nil {
		if j.logger != nil && ctx.Err() == nil {
			j.logger.Error("failed to cleanup expired tokens", slog.Any("error", err))
		}
		return 0
	}
	if purged > 0 && j.logger != nil {
		j.logger.Info("purged expired tokens", slog.Int("count", purged))
	}
	return purged
}
