package repositories

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"smarthr_backend/internal/models"
)

var (
	ErrInterviewNotFound     = errors.New("interview not found")
	ErrFeedbackAlreadyExists = errors.New("feedback already left for this interview")
)

type InterviewFilter struct {
	Status   models.InterviewStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type InterviewRepository interface {
	Create(interview *models.Interview) error
	Update(interview *models.Interview) error
	FindByID(id string) (*models.Interview, error)
	FindByApplication(appID string) ([]models.Interview, error)
	ListForCandidate(userID string, filter InterviewFilter) ([]models.Interview, int64, error)
	ListForEmployer(employerID string, filter InterviewFilter) ([]models.Interview, int64, error)
	FindScheduledBetween(from, to time.Time) ([]models.Interview, error)
	MarkReminderSent(interviewID string, at time.Time) error

	UpdateReview(interviewID string, review []byte, score float64, at time.Time) error
	ListUnreviewed(limit int) ([]models.Interview, error)

	AddQuestion(q *models.InterviewQuestion) error
	UpdateQuestion(q *models.InterviewQuestion) error
	ListQuestions(interviewID string) ([]models.InterviewQuestion, error)

	CreateFeedback(fb *models.InterviewFeedback) error
	FindFeedback(interviewID string) (*models.InterviewFeedback, error)
}

type InterviewRepositoryImpl struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &InterviewRepositoryImpl{db: db}
}

func (r *InterviewRepositoryImpl) Create(interview *models.Interview) error {
	return r.db.Create(interview).Error
}

func (r *InterviewRepositoryImpl) Update(interview *models.Interview) error {
	return r.db.Save(interview).Error
}

func (r *InterviewRepositoryImpl) FindByID(id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("Application").
		Preload("Application.Job").
		Preload("Application.User").
		Preload("Interviewer").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("question_order") }).
		Preload("CandidateFeedback").
		First(&interview, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepositoryImpl) FindByApplication(appID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.Where("application_id = ?", appID).
		Order("scheduled_at").
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepositoryImpl) ListForCandidate(userID string, filter InterviewFilter) ([]models.Interview, int64, error) {
	query := r.db.Model(&models.Interview{}).
		Joins("JOIN applications ON applications.id = interviews.application_id").
		Where("applications.user_id = ?", userID)

	return r.listFiltered(query, filter)
}

func (r *InterviewRepositoryImpl) ListForEmployer(employerID string, filter InterviewFilter) ([]models.Interview, int64, error) {
	query := r.db.Model(&models.Interview{}).
		Joins("JOIN applications ON applications.id = interviews.application_id").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID)

	return r.listFiltered(query, filter)
}

func (r *InterviewRepositoryImpl) listFiltered(query *gorm.DB, filter InterviewFilter) ([]models.Interview, int64, error) {
	if filter.Status != "" {
		query = query.Where("interviews.status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("interviews.scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("interviews.scheduled_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var interviews []models.Interview
	err := query.Preload("Application").Preload("Application.Job").
		Order("interviews.scheduled_at").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&interviews).Error
	if err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}

// FindScheduledBetween returns scheduled interviews starting inside the
// window that have not been reminded yet. Used by the reminder worker.
func (r *InterviewRepositoryImpl) FindScheduledBetween(from, to time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Preload("Application").
		Preload("Application.Job").
		Preload("Application.User").
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ? AND reminder_sent_at IS NULL",
			models.InterviewStatusScheduled, from, to).
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepositoryImpl) MarkReminderSent(interviewID string, at time.Time) error {
	return r.db.Model(&models.Interview{}).
		Where("id = ?", interviewID).
		Update("reminder_sent_at", at).Error
}

func (r *InterviewRepositoryImpl) UpdateReview(interviewID string, review []byte, score float64, at time.Time) error {
	return r.db.Model(&models.Interview{}).
		Where("id = ?", interviewID).
		Updates(map[string]interface{}{
			"review":    datatypes.JSON(review),
			"score":     score,
			"scored_at": at,
		}).Error
}

// ListUnreviewed returns completed interviews whose summary review has
// not been generated yet.
func (r *InterviewRepositoryImpl) ListUnreviewed(limit int) ([]models.Interview, error) {
	if limit < 1 {
		limit = 50
	}
	var interviews []models.Interview
	err := r.db.
		Where("status = ? AND scored_at IS NULL", models.InterviewStatusCompleted).
		Limit(limit).
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepositoryImpl) AddQuestion(q *models.InterviewQuestion) error {
	return r.db.Create(q).Error
}

func (r *InterviewRepositoryImpl) UpdateQuestion(q *models.InterviewQuestion) error {
	return r.db.Save(q).Error
}

func (r *InterviewRepositoryImpl) ListQuestions(interviewID string) ([]models.InterviewQuestion, error) {
	var questions []models.InterviewQuestion
	err := r.db.Where("interview_id = ?", interviewID).
		Order("question_order").
		Find(&questions).Error
	return questions, err
}

func (r *InterviewRepositoryImpl) CreateFeedback(fb *models.InterviewFeedback) error {
	var count int64
	if err := r.db.Model(&models.InterviewFeedback{}).
		Where("interview_id = ?", fb.InterviewID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrFeedbackAlreadyExists
	}

	return r.db.Create(fb).Error
}

func (r *InterviewRepositoryImpl) FindFeedback(interviewID string) (*models.InterviewFeedback, error) {
	var fb models.InterviewFeedback
	if err := r.db.First(&fb, "interview_id = ?", interviewID).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}
