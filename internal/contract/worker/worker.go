package worker

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

// Expirer is satisfied by contract.UseCase.
type Expirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// ExpiryWorker periodically moves overdue active contracts to expired.
type ExpiryWorker struct {
	uc       Expirer
	interval time.Duration
	logger   logger.ZapLogger
}

func NewExpiryWorker(uc Expirer, interval time.Duration, logger logger.ZapLogger) *ExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpiryWorker{
		uc:       uc,
		interval: interval,
		logger:   logger,
	}
}

// Start runs one sweep immediately, then one per interval, until ctx is
// canceled.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.logger.Info("Starting contract expiry worker", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping contract expiry worker")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	n, err := w.uc.ExpireOverdue(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("Failed to expire overdue contracts", zap.Error(err))
		}
		return
	}
	if n > 0 {
		w.logger.Info("Expired overdue contracts", zap.Int("count", n))
	}
}
