package services

import (
	"time"

	"gorm.io/gorm"

	"smarthr_backend/internal/auth"
	"smarthr_backend/internal/email"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/sms"
	"smarthr_backend/internal/storage"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	ProfileService     ProfileService
	JobService         JobService
	ApplicationService ApplicationService
	InterviewService   InterviewService
	AnalyticsService   AnalyticsService
}

// Deps are the process-wide dependencies shared by every container.
type Deps struct {
	Tokens        *auth.TokenManager
	RefreshTTL    time.Duration
	Storage       storage.Storage
	SMSProvider   sms.Provider
	EmailProvider email.Provider
	Tasks         TaskEnqueuer
	UploadLimits  UploadLimits
}

// NewContainer wires repositories and services on top of the given db
// handle. Handlers build one per request from the connection the DB
// middleware injected, which lets tests run everything inside a
// transaction.
func NewContainer(db *gorm.DB, deps Deps) *ServiceContainer {
	tasks := deps.Tasks
	if tasks == nil {
		tasks = NoopEnqueuer()
	}

	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, profileRepo, deps.Tokens, deps.SMSProvider, deps.RefreshTTL, tasks),
		UserService:        NewUserService(userRepo),
		ProfileService:     NewProfileService(profileRepo, deps.Storage, tasks, deps.UploadLimits),
		JobService:         NewJobService(jobRepo, profileRepo),
		ApplicationService: NewApplicationService(appRepo, jobRepo, profileRepo, userRepo, deps.EmailProvider, tasks),
		InterviewService:   NewInterviewService(interviewRepo, appRepo, userRepo, deps.EmailProvider, tasks),
		AnalyticsService:   NewAnalyticsService(analyticsRepo, profileRepo, tasks),
	}
}
