package bots_monitor

import (
	"context"
	"time"

	"memecoin-radar/internal/features/token_poller"
	log "memecoin-radar/internal/infra/log"

	"go.uber.org/zap"
)

type TickRunner interface {
	PollOnce(ctx context.Context) token_poller.TickStats
}

// RunNewTokenMonitor calls PollOnce every interval until ctx is cancelled.
// The first tick fires after one interval. PollOnce runs on this goroutine,
// so a slow tick delays the next one instead of overlapping it.
func RunNewTokenMonitor(ctx context.Context, poller TickRunner, interval time.Duration) {
	log.LogInfo("Starting new token monitor", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.LogInfo("New token monitor stopped")
			return
		case <-ticker.C:
			start := time.Now()
			stats := poller.PollOnce(ctx)
			logTick(stats, time.Since(start))
		}
	}
}

func logTick(stats token_poller.TickStats, elapsed time.Duration) {
	// both cases were already logged by PollOnce
	if stats.NoDestination || stats.Err != nil {
		return
	}
	if stats.LookupFailures > 0 || stats.SendFailures > 0 {
		log.LogWarn("Tick finished with failures",
			zap.Int("lookupFailures", stats.LookupFailures),
			zap.Int("sendFailures", stats.SendFailures),
			zap.Duration("elapsed", elapsed))
		return
	}
	log.LogDebug("Tick finished", zap.Int("alerts", stats.Alerts), zap.Duration("elapsed", elapsed))
}
