package dto

import (
	"smarthr_backend/internal/models"
)

type CreateApplicationRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid4"`
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=5000"`
	CVKey       string `json:"cv_key" validate:"omitempty,max=500"`
}

type UpdateApplicationStatusRequest struct {
	Status          models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	Comment         string                   `json:"comment" validate:"omitempty,max=2000"`
	RejectionReason string                   `json:"rejection_reason" validate:"omitempty,max=2000"`
}

type AddNoteRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type BulkStatusUpdateRequest struct {
	ApplicationIDs []string                 `json:"application_ids" validate:"required,min=1,max=50,dive,uuid4"`
	Status         models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	Comment        string                   `json:"comment" validate:"omitempty,max=2000"`
}

// BulkStatusUpdateResponse reports per-application outcomes. Skipped
// maps an application id to the reason it was left untouched.
type BulkStatusUpdateResponse struct {
	Updated []string          `json:"updated"`
	Skipped map[string]string `json:"skipped,omitempty"`
}

type ApplicationListQuery struct {
	Status        models.ApplicationStatus `form:"status" validate:"omitempty,is-application-status"`
	MinMatchScore *float64                 `form:"min_match_score" validate:"omitempty,min=0,max=100"`
	Page          int                      `form:"page" validate:"omitempty,min=1"`
	PageSize      int                      `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type ApplicationListResponse struct {
	Applications []models.Application `json:"applications"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
}
