package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services"
)

const sweepBatchSize = 50

// ScoringWorker sweeps for work the task queue missed: unscored
// applications, unprocessed CVs and completed interviews without a
// review. The queue handles the happy path right after the triggering
// request; the sweep guarantees nothing is lost across restarts or
// queue overflow.
type ScoringWorker struct {
	appRepo       repositories.ApplicationRepository
	profileRepo   repositories.ProfileRepository
	interviewRepo repositories.InterviewRepository

	applications services.ApplicationService
	profiles     services.ProfileService
	interviews   services.InterviewService

	interval time.Duration
}

func NewScoringWorker(db *gorm.DB, svc *services.ServiceContainer, interval time.Duration) *ScoringWorker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ScoringWorker{
		appRepo:       repositories.NewApplicationRepository(db),
		profileRepo:   repositories.NewProfileRepository(db),
		interviewRepo: repositories.NewInterviewRepository(db),
		applications:  svc.ApplicationService,
		profiles:      svc.ProfileService,
		interviews:    svc.InterviewService,
		interval:      interval,
	}
}

func (w *ScoringWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *ScoringWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scoring worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ScoringWorker) sweep(ctx context.Context) {
	apps, err := w.appRepo.ListUnscored(sweepBatchSize)
	if err != nil {
		logger.WithError(err).Error("failed to list unscored applications")
	} else {
		for _, app := range apps {
			if err := w.applications.ScoreApplication(ctx, app.ID); err != nil {
				logger.WithError(err).Warn("application scoring failed", "application_id", app.ID)
			}
		}
	}

	cvs, err := w.profileRepo.ListUnprocessedCVs(sweepBatchSize)
	if err != nil {
		logger.WithError(err).Error("failed to list unprocessed CVs")
	} else {
		for _, cv := range cvs {
			if err := w.profiles.ProcessCV(ctx, cv.ID); err != nil {
				logger.WithError(err).Warn("CV processing failed", "cv_id", cv.ID)
			}
		}
	}

	unreviewed, err := w.interviewRepo.ListUnreviewed(sweepBatchSize)
	if err != nil {
		logger.WithError(err).Error("failed to list unreviewed interviews")
	} else {
		for _, interview := range unreviewed {
			if err := w.interviews.GenerateReview(ctx, interview.ID); err != nil {
				logger.WithError(err).Warn("interview review failed", "interview_id", interview.ID)
			}
		}
	}
}
