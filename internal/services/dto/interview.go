package dto

import (
	"time"

	"smarthr_backend/internal/models"
)

type ScheduleInterviewRequest struct {
	ApplicationID   string               `json:"application_id" validate:"required,uuid4"`
	InterviewType   models.InterviewType `json:"interview_type" validate:"omitempty,is-interview-type"`
	ScheduledAt     time.Time            `json:"scheduled_at" validate:"required"`
	DurationMinutes int                  `json:"duration_minutes" validate:"omitempty,min=15,max=480"`
	Location        string               `json:"location" validate:"omitempty,max=300"`
	MeetingURL      string               `json:"meeting_url" validate:"omitempty,url"`
	InterviewerID   *string              `json:"interviewer_id" validate:"omitempty,uuid4"`
}

type RescheduleInterviewRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes *int      `json:"duration_minutes" validate:"omitempty,min=15,max=480"`
	Location        *string   `json:"location" validate:"omitempty,max=300"`
	MeetingURL      *string   `json:"meeting_url" validate:"omitempty,url"`
}

type CompleteInterviewRequest struct {
	InterviewerFeedback string `json:"interviewer_feedback" validate:"omitempty,max=5000"`
	InterviewerRating   *int   `json:"interviewer_rating" validate:"omitempty,min=1,max=10"`
	Notes               string `json:"notes" validate:"omitempty,max=5000"`
}

type AddQuestionRequest struct {
	QuestionText string `json:"question_text" validate:"required,max=2000"`
	Order        int    `json:"order" validate:"omitempty,min=0"`
}

type AnswerQuestionRequest struct {
	AnswerText string   `json:"answer_text" validate:"required,max=10000"`
	Score      *float64 `json:"score" validate:"omitempty,min=0,max=100"`
}

type InterviewFeedbackRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comments string `json:"comments" validate:"omitempty,max=5000"`
}

type InterviewListQuery struct {
	Status   models.InterviewStatus `form:"status" validate:"omitempty,is-interview-status"`
	From     *time.Time             `form:"from" time_format:"2006-01-02"`
	To       *time.Time             `form:"to" time_format:"2006-01-02"`
	Page     int                    `form:"page" validate:"omitempty,min=1"`
	PageSize int                    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type InterviewListResponse struct {
	Interviews []models.Interview `json:"interviews"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}
