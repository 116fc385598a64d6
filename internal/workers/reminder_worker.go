package workers

import (
	"context"
	"time"

	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/services"
)

// ReminderWorker emails candidates about interviews starting within
// the next day. Sent reminders are marked on the interview row, so an
// hourly cadence produces no duplicates.
type ReminderWorker struct {
	interviews services.InterviewService
	interval   time.Duration
}

func NewReminderWorker(interviews services.InterviewService, interval time.Duration) *ReminderWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReminderWorker{interviews: interviews, interval: interval}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *ReminderWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			now := time.Now()
			sent, err := w.interviews.SendReminders(ctx, now, now.Add(24*time.Hour))
			if err != nil {
				logger.WithError(err).Error("interview reminder run failed")
			} else if sent > 0 {
				logger.Info("Interview reminders sent", "count", sent)
			}
		}
	}
}
