package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hamdukhub/internal/platform/repositories"
)

// ResetUsageCounters starts a fresh accounting period for every API user.
// Scheduled monthly; the quota gate itself never resets anything.
func ResetUsageCounters(ctx context.Context, users *repositories.APIUserRepository) error {
	n, err := users.ResetAllUsage(ctx)
	if err != nil {
		return err
	}
	log.Info().Int64("accounts", n).Msg("usage counters reset")
	return nil
}

// PurgeUsageLogs enforces log retention. Rows are never mutated, only
// aged out.
func PurgeUsageLogs(ctx context.Context, logs *repositories.UsageLogRepository, retentionDays int) error {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()
	n, err := logs.PurgeBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Msg("usage logs purged")
	return nil
}

// PurgeRateWindows drops submission-rate windows older than a day; they
// only matter while the window is live.
func PurgeRateWindows(ctx context.Context, windows *repositories.RateWindowRepository) error {
	cutoff := time.Now().Add(-24 * time.Hour).Unix()
	n, err := windows.PurgeBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Msg("stale rate windows purged")
	return nil
}
