package workers

import (
	"context"
	"time"

	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/services"
)

// AnalyticsWorker refreshes the daily statistics snapshots. The
// collection upserts key on (region|industry|skill, date), so a rerun
// on the same day just refreshes the numbers.
type AnalyticsWorker struct {
	analytics services.AnalyticsService
}

func NewAnalyticsWorker(analytics services.AnalyticsService) *AnalyticsWorker {
	return &AnalyticsWorker{analytics: analytics}
}

func (w *AnalyticsWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *AnalyticsWorker) loop(ctx context.Context) {
	// Collect once at startup so a fresh deployment has data, then
	// daily after midnight.
	w.collect(ctx)

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 30, 0, 0, now.Location())

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Analytics worker stopped")
			return
		case <-timer.C:
			w.collect(ctx)
		}
	}
}

func (w *AnalyticsWorker) collect(ctx context.Context) {
	date := time.Now()

	if err := w.analytics.CollectRegionStatistics(ctx, date); err != nil {
		logger.WithError(err).Error("region statistics collection failed")
	}
	if err := w.analytics.CollectIndustryStatistics(ctx, date); err != nil {
		logger.WithError(err).Error("industry statistics collection failed")
	}
	if err := w.analytics.CollectSkillDemand(ctx, date); err != nil {
		logger.WithError(err).Error("skill demand collection failed")
	}
}
