package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"smarthr_backend/internal/email"
	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/services/dto"
	"smarthr_backend/pkg/apperrors"
)

type InterviewService interface {
	Schedule(employerID string, req *dto.ScheduleInterviewRequest) (*models.Interview, error)
	Reschedule(employerID, interviewID string, req *dto.RescheduleInterviewRequest) (*models.Interview, error)
	Cancel(employerID, interviewID string) (*models.Interview, error)
	Complete(employerID, interviewID string, req *dto.CompleteInterviewRequest) (*models.Interview, error)

	Get(requesterID string, role models.UserRole, interviewID string) (*models.Interview, error)
	ListForCandidate(userID string, query *dto.InterviewListQuery) (*dto.InterviewListResponse, error)
	ListForEmployer(employerID string, query *dto.InterviewListQuery) (*dto.InterviewListResponse, error)

	AddQuestion(employerID, interviewID string, req *dto.AddQuestionRequest) (*models.InterviewQuestion, error)
	AnswerQuestion(employerID, interviewID, questionID string, req *dto.AnswerQuestionRequest) (*models.InterviewQuestion, error)

	LeaveFeedback(userID, interviewID string, req *dto.InterviewFeedbackRequest) (*models.InterviewFeedback, error)

	GenerateReview(ctx context.Context, interviewID string) error
	SendReminders(ctx context.Context, from, to time.Time) (int, error)
}

type InterviewServiceImpl struct {
	interviewRepo repositories.InterviewRepository
	appRepo       repositories.ApplicationRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	tasks         TaskEnqueuer
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	appRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	tasks TaskEnqueuer,
) InterviewService {
	return &InterviewServiceImpl{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
		tasks:         tasks,
	}
}

func (s *InterviewServiceImpl) Schedule(employerID string, req *dto.ScheduleInterviewRequest) (*models.Interview, error) {
	app, err := s.appRepo.FindByID(req.ApplicationID)
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
	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("scheduled_at must be in the future")
	}

	interview := &models.Interview{
		ApplicationID: req.ApplicationID,
		ScheduledAt:   req.ScheduledAt,
		Location:      req.Location,
		MeetingURL:    req.MeetingURL,
		InterviewerID: req.InterviewerID,
		Status:        models.InterviewStatusScheduled,
	}
	if req.InterviewType != "" {
		interview.InterviewType = req.InterviewType
	}
	if req.DurationMinutes > 0 {
		interview.DurationMinutes = req.DurationMinutes
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Move the application forward if it has not reached the interview
	// stage yet.
	if app.Status != models.ApplicationStatusInterviewScheduled && app.Status != models.ApplicationStatusInterviewed {
		changedBy := employerID
		if err := s.appRepo.UpdateStatus(app.ID, app.Status, models.ApplicationStatusInterviewScheduled, &changedBy, "Interview scheduled"); err != nil {
			logger.WithError(err).Warn("failed to advance application status", "application_id", app.ID)
		}
	}

	s.notifyScheduled(app, interview)

	return interview, nil
}

func (s *InterviewServiceImpl) Reschedule(employerID, interviewID string, req *dto.RescheduleInterviewRequest) (*models.Interview, error) {
	interview, err := s.authorizeEmployer(employerID, interviewID)
	if err != nil {
		return nil, err
	}

	switch interview.Status {
	case models.InterviewStatusScheduled, models.InterviewStatusRescheduled, models.InterviewStatusNoShow:
	default:
		return nil, apperrors.ErrInvalidStatus("interview", "Interview cannot be rescheduled in its current status")
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("scheduled_at must be in the future")
	}

	interview.ScheduledAt = req.ScheduledAt
	interview.Status = models.InterviewStatusRescheduled
	if req.DurationMinutes != nil {
		interview.DurationMinutes = *req.DurationMinutes
	}
	if req.Location != nil {
		interview.Location = *req.Location
	}
	if req.MeetingURL != nil {
		interview.MeetingURL = *req.MeetingURL
	}

	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if interview.Application != nil {
		s.notifyScheduled(interview.Application, interview)
	}

	return interview, nil
}

func (s *InterviewServiceImpl) Cancel(employerID, interviewID string) (*models.Interview, error) {
	interview, err := s.authorizeEmployer(employerID, interviewID)
	if err != nil {
		return nil, err
	}

	switch interview.Status {
	case models.InterviewStatusCompleted, models.InterviewStatusCancelled:
		return nil, apperrors.ErrInterviewNotCancellable
	}

	interview.Status = models.InterviewStatusCancelled
	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return interview, nil
}

func (s *InterviewServiceImpl) Complete(employerID, interviewID string, req *dto.CompleteInterviewRequest) (*models.Interview, error) {
	interview, err := s.authorizeEmployer(employerID, interviewID)
	if err != nil {
		return nil, err
	}

	switch interview.Status {
	case models.InterviewStatusCancelled, models.InterviewStatusCompleted:
		return nil, apperrors.ErrInvalidStatus("interview", "Interview cannot be completed in its current status")
	}

	now := time.Now()
	interview.Status = models.InterviewStatusCompleted
	interview.CompletedAt = &now
	interview.InterviewerFeedback = req.InterviewerFeedback
	interview.InterviewerRating = req.InterviewerRating
	if req.Notes != "" {
		interview.Notes = req.Notes
	}

	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Advance the application to interviewed
	if app := interview.Application; app != nil && app.Status == models.ApplicationStatusInterviewScheduled {
		changedBy := employerID
		if err := s.appRepo.UpdateStatus(app.ID, app.Status, models.ApplicationStatusInterviewed, &changedBy, "Interview completed"); err != nil {
			logger.WithError(err).Warn("failed to advance application status", "application_id", app.ID)
		}
	}

	interviewID = interview.ID
	s.tasks.Enqueue("interview-review", func(ctx context.Context) {
		if err := s.GenerateReview(ctx, interviewID); err != nil {
			logger.CtxWithError(ctx, "failed to generate interview review", err, "interview_id", interviewID)
		}
	})

	return interview, nil
}

func (s *InterviewServiceImpl) Get(requesterID string, role models.UserRole, interviewID string) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	allowed := role == models.UserRoleAdmin || role == models.UserRoleGovernment
	if app := interview.Application; app != nil {
		if app.UserID == requesterID {
			allowed = true
			// Internal assessment stays with the employer
			interview.InterviewerFeedback = ""
			interview.InterviewerRating = nil
			interview.Notes = ""
		}
		if app.Job != nil && app.Job.EmployerID == requesterID {
			allowed = true
		}
	}
	if !allowed {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return interview, nil
}

func (s *InterviewServiceImpl) ListForCandidate(userID string, query *dto.InterviewListQuery) (*dto.InterviewListResponse, error) {
	filter := repositories.InterviewFilter{
		Status:   query.Status,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	interviews, total, err := s.interviewRepo.ListForCandidate(userID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.InterviewListResponse{
		Interviews: interviews,
		Total:      total,
		Page:       normalizePage(query.Page),
		PageSize:   normalizePageSize(query.PageSize),
	}, nil
}

func (s *InterviewServiceImpl) ListForEmployer(employerID string, query *dto.InterviewListQuery) (*dto.InterviewListResponse, error) {
	filter := repositories.InterviewFilter{
		Status:   query.Status,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	interviews, total, err := s.interviewRepo.ListForEmployer(employerID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.InterviewListResponse{
		Interviews: interviews,
		Total:      total,
		Page:       normalizePage(query.Page),
		PageSize:   normalizePageSize(query.PageSize),
	}, nil
}

func (s *InterviewServiceImpl) AddQuestion(employerID, interviewID string, req *dto.AddQuestionRequest) (*models.InterviewQuestion, error) {
	if _, err := s.authorizeEmployer(employerID, interviewID); err != nil {
		return nil, err
	}

	question := &models.InterviewQuestion{
		InterviewID:  interviewID,
		QuestionText: req.QuestionText,
		Order:        req.Order,
	}
	if err := s.interviewRepo.AddQuestion(question); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return question, nil
}

func (s *InterviewServiceImpl) AnswerQuestion(employerID, interviewID, questionID string, req *dto.AnswerQuestionRequest) (*models.InterviewQuestion, error) {
	if _, err := s.authorizeEmployer(employerID, interviewID); err != nil {
		return nil, err
	}

	questions, err := s.interviewRepo.ListQuestions(interviewID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i := range questions {
		if questions[i].ID == questionID {
			questions[i].AnswerText = req.AnswerText
			questions[i].Score = req.Score
			if err := s.interviewRepo.UpdateQuestion(&questions[i]); err != nil {
				return nil, apperrors.InternalError(err)
			}
			return &questions[i], nil
		}
	}

	return nil, apperrors.ErrNotFound(repositories.ErrInterviewNotFound)
}

func (s *InterviewServiceImpl) LeaveFeedback(userID, interviewID string, req *dto.InterviewFeedbackRequest) (*models.InterviewFeedback, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if interview.Application == nil || interview.Application.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if interview.Status != models.InterviewStatusCompleted {
		return nil, apperrors.ErrInvalidStatus("interview", "Feedback can only be left after the interview is completed")
	}

	feedback := &models.InterviewFeedback{
		InterviewID: interviewID,
		Rating:      req.Rating,
		Comments:    req.Comments,
	}
	if err := s.interviewRepo.CreateFeedback(feedback); err != nil {
		if apperrors.Is(err, repositories.ErrFeedbackAlreadyExists) {
			return nil, apperrors.ErrFeedbackAlreadyLeft
		}
		return nil, apperrors.InternalError(err)
	}
	return feedback, nil
}

// GenerateReview summarizes a completed interview into a stored review
// with an overall 0-100 score. Question scores are on the same 0-100
// scale and weigh twice as much as the interviewer's overall rating.
func (s *InterviewServiceImpl) GenerateReview(ctx context.Context, interviewID string) error {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		return err
	}
	if interview.Status != models.InterviewStatusCompleted {
		return nil
	}
	if interview.ScoredAt != nil {
		return nil
	}

	questions, err := s.interviewRepo.ListQuestions(interviewID)
	if err != nil {
		return err
	}

	var sum float64
	scored := 0
	answered := 0
	for _, q := range questions {
		if q.AnswerText != "" {
			answered++
		}
		if q.Score != nil {
			sum += *q.Score
			scored++
		}
	}

	var avgQuestionScore *float64
	if scored > 0 {
		avg := sum / float64(scored)
		avgQuestionScore = &avg
	}

	// Question scores are 0-100, the interviewer rating is 1-10. The
	// blend weights answered questions twice as much as the gut rating.
	var score float64
	switch {
	case avgQuestionScore != nil && interview.InterviewerRating != nil:
		score = *avgQuestionScore*2.0/3.0 + float64(*interview.InterviewerRating)*10/3.0
	case avgQuestionScore != nil:
		score = *avgQuestionScore
	case interview.InterviewerRating != nil:
		score = float64(*interview.InterviewerRating) * 10
	}

	review := map[string]interface{}{
		"total_questions":    len(questions),
		"answered_questions": answered,
		"scored_questions":   scored,
		"avg_question_score": avgQuestionScore,
		"interviewer_rating": interview.InterviewerRating,
	}
	reviewJSON, err := json.Marshal(review)
	if err != nil {
		return err
	}

	score = math.Round(score*100) / 100

	if err := s.interviewRepo.UpdateReview(interviewID, reviewJSON, score, time.Now()); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "interview review generated", "interview_id", interviewID, "score", score)
	return nil
}

// SendReminders emails candidates whose interviews start inside the
// window and have not been reminded. Returns the number of reminders
// sent.
func (s *InterviewServiceImpl) SendReminders(ctx context.Context, from, to time.Time) (int, error) {
	interviews, err := s.interviewRepo.FindScheduledBetween(from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range interviews {
		interview := &interviews[i]
		app := interview.Application
		if app == nil || app.User == nil || app.User.Email == nil {
			continue
		}

		jobTitle := ""
		if app.Job != nil {
			jobTitle = app.Job.Title
		}

		err := s.emailProvider.SendTemplate(
			[]string{*app.User.Email},
			"Interview reminder",
			email.TemplateInterviewReminder,
			email.TemplateData{
				"FullName":    app.User.FullName,
				"JobTitle":    jobTitle,
				"ScheduledAt": interview.ScheduledAt.Format("2006-01-02 15:04 MST"),
				"MeetingURL":  interview.MeetingURL,
				"Location":    interview.Location,
			},
		)
		if err != nil {
			logger.CtxWithError(ctx, "failed to send interview reminder", err, "interview_id", interview.ID)
			continue
		}

		if err := s.interviewRepo.MarkReminderSent(interview.ID, time.Now()); err != nil {
			logger.CtxWithError(ctx, "failed to mark reminder sent", err, "interview_id", interview.ID)
			continue
		}
		sent++
	}

	return sent, nil
}

func (s *InterviewServiceImpl) authorizeEmployer(employerID, interviewID string) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if interview.Application == nil || interview.Application.Job == nil ||
		interview.Application.Job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return interview, nil
}

func (s *InterviewServiceImpl) notifyScheduled(app *models.Application, interview *models.Interview) {
	interviewCopy := *interview
	s.tasks.Enqueue("interview-notification", func(ctx context.Context) {
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
			"Interview scheduled",
			email.TemplateInterviewScheduled,
			email.TemplateData{
				"FullName":    user.FullName,
				"JobTitle":    jobTitle,
				"ScheduledAt": interviewCopy.ScheduledAt.Format("2006-01-02 15:04 MST"),
				"MeetingURL":  interviewCopy.MeetingURL,
				"Location":    interviewCopy.Location,
			},
		)
		if err != nil {
			logger.CtxWithError(ctx, "failed to send interview email", err, "interview_id", interviewCopy.ID)
		}
	})
}
