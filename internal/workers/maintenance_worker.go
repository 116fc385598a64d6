package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/repositories"
)

// MaintenanceWorker runs periodic housekeeping: closing expired
// postings and purging dead tokens and verification codes.
type MaintenanceWorker struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	interval time.Duration
}

func NewMaintenanceWorker(db *gorm.DB, interval time.Duration) *MaintenanceWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &MaintenanceWorker{
		jobRepo:  repositories.NewJobRepository(db),
		userRepo: repositories.NewUserRepository(db),
		interval: interval,
	}
}

func (w *MaintenanceWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *MaintenanceWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Maintenance worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *MaintenanceWorker) runOnce() {
	if n, err := w.jobRepo.CloseExpired(time.Now()); err != nil {
		logger.WithError(err).Error("failed to close expired jobs")
	} else if n > 0 {
		logger.Info("Closed expired jobs", "count", n)
	}

	if n, err := w.userRepo.CleanExpiredRefreshTokens(); err != nil {
		logger.WithError(err).Error("failed to clean expired refresh tokens")
	} else if n > 0 {
		logger.Info("Cleaned expired refresh tokens", "count", n)
	}

	if n, err := w.userRepo.CleanExpiredVerifications(); err != nil {
		logger.WithError(err).Error("failed to clean expired phone verifications")
	} else if n > 0 {
		logger.Info("Cleaned expired phone verifications", "count", n)
	}
}
