package services

import (
	"context"
	"encoding/json"
	"time"

	"smarthr_backend/internal/algorithms"
	"smarthr_backend/internal/email"
	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
	"smarthr_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(userID string, req *dto.CreateApplicationRequest) (*models.Application, error)
	Get(requesterID string, role models.UserRole, appID string) (*models.Application, error)
	ListForJob(employerID, jobID string, query *dto.ApplicationListQuery) (*dto.ApplicationListResponse, error)
	ListMine(userID string, query *dto.ApplicationListQuery) (*dto.ApplicationListResponse, error)

	Shortlist(employerID, jobID string) ([]models.Application, error)

	UpdateStatus(employerID, appID string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	BulkUpdateStatus(employerID string, req *dto.BulkStatusUpdateRequest) (*dto.BulkStatusUpdateResponse, error)
	Withdraw(userID, appID string) (*models.Application, error)

	AddNote(employerID, appID string, req *dto.AddNoteRequest) (*models.ApplicationNote, error)
	ListNotes(employerID, appID string) ([]models.ApplicationNote, error)

	ScoreApplication(ctx context.Context, appID string) error
}

type ApplicationServiceImpl struct {
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobRepository
	profileRepo   repositories.ProfileRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	tasks         TaskEnqueuer
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	tasks TaskEnqueuer,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
		tasks:         tasks,
	}
}

func (s *ApplicationServiceImpl) Apply(userID string, req *dto.CreateApplicationRequest) (*models.Application, error) {
	job, err := s.jobRepo.FindByID(req.JobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !job.IsActive() {
		return nil, apperrors.ErrJobNotOpen
	}
	if job.Deadline != nil && time.Now().After(*job.Deadline) {
		return nil, apperrors.ErrJobNotOpen
	}
	if job.EmployerID == userID {
		return nil, apperrors.ErrInvalidUserRole
	}

	app := &models.Application{
		JobID:       req.JobID,
		UserID:      userID,
		CoverLetter: req.CoverLetter,
		CVKey:       req.CVKey,
		Status:      models.ApplicationStatusSubmitted,
	}

	if err := s.appRepo.Create(app); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	appID := app.ID
	s.tasks.Enqueue("application-scoring", func(ctx context.Context) {
		if err := s.ScoreApplication(ctx, appID); err != nil {
			logger.CtxWithError(ctx, "application scoring failed", err, "application_id", appID)
		}
	})

	return app, nil
}

func (s *ApplicationServiceImpl) Get(requesterID string, role models.UserRole, appID string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !s.canAccess(requesterID, role, app) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	// Internal review fields are not shown to the candidate
	if app.UserID == requesterID && role == models.UserRoleCandidate {
		app.EmployerNotes = ""
		app.Notes = nil
	}

	return app, nil
}

func (s *ApplicationServiceImpl) canAccess(requesterID string, role models.UserRole, app *models.Application) bool {
	switch {
	case app.UserID == requesterID:
		return true
	case app.Job != nil && app.Job.EmployerID == requesterID:
		return true
	case role == models.UserRoleAdmin || role == models.UserRoleGovernment:
		return true
	}
	return false
}

func (s *ApplicationServiceImpl) ListForJob(employerID, jobID string, query *dto.ApplicationListQuery) (*dto.ApplicationListResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	filter := repositories.ApplicationFilter{
		JobID:         jobID,
		Status:        query.Status,
		MinMatchScore: query.MinMatchScore,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}

	apps, total, err := s.appRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ApplicationListResponse{
		Applications: apps,
		Total:        total,
		Page:         normalizePage(query.Page),
		PageSize:     normalizePageSize(query.PageSize),
	}, nil
}

func (s *ApplicationServiceImpl) ListMine(userID string, query *dto.ApplicationListQuery) (*dto.ApplicationListResponse, error) {
	filter := repositories.ApplicationFilter{
		UserID:   userID,
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	apps, total, err := s.appRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ApplicationListResponse{
		Applications: apps,
		Total:        total,
		Page:         normalizePage(query.Page),
		PageSize:     normalizePageSize(query.PageSize),
	}, nil
}

// Shortlist returns the strongest scored candidates for the employer's
// posting. Withdrawn and rejected applications are excluded.
func (s *ApplicationServiceImpl) Shortlist(employerID, jobID string) ([]models.Application, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	apps, err := s.appRepo.ShortlistForJob(jobID, 10)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) UpdateStatus(employerID, appID string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if app.Job == nil || app.Job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if app.Status.IsFinal() {
		return nil, apperrors.ErrApplicationFinal
	}
	// Withdrawal belongs to the candidate
	if req.Status == models.ApplicationStatusWithdrawn {
		return nil, apperrors.ErrInvalidUserRole
	}
	if req.Status == app.Status {
		return nil, apperrors.ErrInvalidStatus("application", "Application is already in this status")
	}

	changedBy := employerID
	if err := s.appRepo.UpdateStatus(appID, app.Status, req.Status, &changedBy, req.Comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.Status == models.ApplicationStatusRejected && req.RejectionReason != "" {
		app.RejectionReason = req.RejectionReason
		app.Status = req.Status
		if err := s.appRepo.Update(app); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	s.notifyStatusChange(app, req.Status, req.Comment)

	return s.appRepo.FindByID(appID)
}

// BulkUpdateStatus moves several applications to the same status in one
// call. Applications that cannot transition are skipped with a reason
// rather than failing the whole batch.
func (s *ApplicationServiceImpl) BulkUpdateStatus(employerID string, req *dto.BulkStatusUpdateRequest) (*dto.BulkStatusUpdateResponse, error) {
	if req.Status == models.ApplicationStatusWithdrawn {
		return nil, apperrors.ErrInvalidUserRole
	}

	resp := &dto.BulkStatusUpdateResponse{
		Updated: make([]string, 0, len(req.ApplicationIDs)),
		Skipped: map[string]string{},
	}

	for _, appID := range req.ApplicationIDs {
		app, err := s.appRepo.FindByID(appID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrApplicationNotFound) {
				resp.Skipped[appID] = "not found"
				continue
			}
			return nil, apperrors.InternalError(err)
		}

		switch {
		case app.Job == nil || app.Job.EmployerID != employerID:
			resp.Skipped[appID] = "not your posting"
			continue
		case app.Status.IsFinal():
			resp.Skipped[appID] = "already in a final status"
			continue
		case app.Status == req.Status:
			resp.Skipped[appID] = "already in this status"
			continue
		}

		changedBy := employerID
		if err := s.appRepo.UpdateStatus(appID, app.Status, req.Status, &changedBy, req.Comment); err != nil {
			return nil, apperrors.InternalError(err)
		}

		s.notifyStatusChange(app, req.Status, req.Comment)
		resp.Updated = append(resp.Updated, appID)
	}

	if len(resp.Skipped) == 0 {
		resp.Skipped = nil
	}
	return resp, nil
}

func (s *ApplicationServiceImpl) Withdraw(userID, appID string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if app.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if app.Status.IsFinal() {
		return nil, apperrors.ErrApplicationFinal
	}

	changedBy := userID
	if err := s.appRepo.UpdateStatus(appID, app.Status, models.ApplicationStatusWithdrawn, &changedBy, ""); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.appRepo.FindByID(appID)
}

func (s *ApplicationServiceImpl) AddNote(employerID, appID string, req *dto.AddNoteRequest) (*models.ApplicationNote, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if app.Job == nil || app.Job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	note := &models.ApplicationNote{
		ApplicationID: appID,
		AuthorID:      employerID,
		Content:       req.Content,
	}
	if err := s.appRepo.AddNote(note); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return note, nil
}

func (s *ApplicationServiceImpl) ListNotes(employerID, appID string) ([]models.ApplicationNote, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if app.Job == nil || app.Job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	notes, err := s.appRepo.ListNotes(appID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notes, nil
}

// ScoreApplication computes the candidate/job match and persists it.
func (s *ApplicationServiceImpl) ScoreApplication(ctx context.Context, appID string) error {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		return err
	}
	if app.Job == nil {
		return repositories.ErrJobNotFound
	}

	profile, err := s.profileRepo.FindByUserID(app.UserID)
	if err != nil {
		return err
	}

	score, analysis := algorithms.CalculateMatchScore(profile, app.Job)

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	return s.appRepo.UpdateMatchScore(appID, score, analysisJSON, time.Now())
}

func (s *ApplicationServiceImpl) notifyStatusChange(app *models.Application, newStatus models.ApplicationStatus, comment string) {
	s.tasks.Enqueue("status-notification", func(ctx context.Context) {
		user, err := s.userRepo.FindByID(app.UserID)
		if err != nil || user.Email == nil {
			return
		}

		jobTitle := ""
		if app.Job != nil {
			jobTitle = app.Job.Title
		}

		err = s.emailProvider.SendTemplate(
			[]string{*user.Email},
			"Your application status changed",
			email.TemplateApplicationStatus,
			email.TemplateData{
				"FullName": user.FullName,
				"JobTitle": jobTitle,
				"Status":   string(newStatus),
				"Comment":  comment,
			},
		)
		if err != nil {
			logger.CtxWithError(ctx, "failed to send status email", err, "application_id", app.ID)
		}
	})
}
