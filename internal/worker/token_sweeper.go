package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campusclubs/club-blog-service/internal/auth"
)

// StartTokenSweeper periodically deletes expired token rows. Storage hygiene
// only; validation already treats expired rows as nonexistent.
func StartTokenSweeper(ctx context.Context, ledger *auth.Ledger, logger *zap.Logger, interval time.Duration) {
	if ledger == nil {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				swept, err := ledger.SweepExpired(ctx)
				if err != nil {
					logger.Warn("token sweep failed", zap.Error(err))
					continue
				}
				if swept > 0 {
					logger.Info("swept expired tokens", zap.Int64("count", swept))
				}
			}
		}
	}()
}
