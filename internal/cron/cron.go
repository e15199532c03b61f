package cron

import (
	"context"
	"time"

	"github.com/linskybing/programhub/pkg/logger"
)

// Evictor is an in-memory registry whose idle entries can be dropped.
type Evictor interface {
	EvictIdle(maxIdle time.Duration) int
	Len() int
}

// StartIdleEviction periodically drops entries of target idle for longer
// than maxIdle until ctx is cancelled. name labels the log lines.
func StartIdleEviction(ctx context.Context, name string, target Evictor, maxIdle, interval time.Duration) {
	log := logger.For("cron").WithField("target", name)
	if maxIdle <= 0 || interval <= 0 {
		log.Info("Idle eviction disabled")
		return
	}

	go func() {
		log.WithField("max_idle", maxIdle.String()).Info("Starting idle eviction task")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := target.EvictIdle(maxIdle); n > 0 {
					log.WithField("evicted", n).WithField("open", target.Len()).Info("Evicted idle entries")
				}
			}
		}
	}()
}
