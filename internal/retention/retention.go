// Package retention schedules the periodic purge of stored message text.
// Aggregated views are always recomputed from the surviving records, so the
// purge needs no cache invalidation.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/config"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/telemetry"
)

// defaultCron runs daily at 02:00.
const defaultCron = "0 2 * * *"

// Start starts the retention scheduler if enabled. Returns a cancel func.
func Start(ctx context.Context, cfg config.RetentionConfig) (context.CancelFunc, error) {
	if !cfg.Enabled {
		logger.Info("retention_disabled")
		return func() {}, nil
	}
	if cfg.Period == 0 {
		return nil, fmt.Errorf("retention enabled but no period configured")
	}

	cronExpr := cfg.Cron
	if cronExpr == "" {
		cronExpr = defaultCron
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("retention_invalid_cron", "cron", cfg.Cron)
		return nil, fmt.Errorf("invalid retention cron expression: %s", cfg.Cron)
	}

	logger.Info("retention_enabled", "cron", cronExpr, "period", time.Duration(cfg.Period).String(), "dry_run", cfg.DryRun)
	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, cfg, cronExpr)
	return cancel, nil
}

// runScheduler computes the next cron tick with gronx and sleeps until it.
func runScheduler(ctx context.Context, cfg config.RetentionConfig, cronExpr string) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("retention_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-time.After(time.Until(next)):
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		}

		if err := RunOnce(cfg); err != nil {
			logger.Error("retention_run_error", "error", err)
		}
	}
}

// RunOnce performs a single purge of messages older than the configured
// period. Exported so an admin trigger or test can run it on demand.
func RunOnce(cfg config.RetentionConfig) error {
	cutoff := time.Now().UTC().Add(-time.Duration(cfg.Period))
	removed, err := store.PurgeMessagesBefore(cutoff, cfg.DryRun)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		logger.Info("retention_dry_run", "would_remove", removed, "cutoff", cutoff.Format(time.RFC3339))
		return nil
	}
	telemetry.RetentionPurged.Add(float64(removed))
	logger.Info("retention_purged", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	return nil
}
