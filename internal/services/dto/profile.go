package dto

import (
	"encoding/json"
	"time"

	"smarthr_backend/internal/algorithms"
	"smarthr_backend/internal/models"
)

type UpdateProfileRequest struct {
	Bio         *string    `json:"bio" validate:"omitempty,max=2000"`
	Location    *string    `json:"location" validate:"omitempty,max=120"`
	DateOfBirth *time.Time `json:"date_of_birth"`

	Skills    []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=60"`
	Languages []string `json:"languages" validate:"omitempty,max=20,dive,min=1,max=60"`

	Education      json.RawMessage `json:"education" swaggertype:"object"`
	Experience     json.RawMessage `json:"experience" swaggertype:"object"`
	Certifications json.RawMessage `json:"certifications" swaggertype:"object"`

	LinkedinURL  *string `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL    *string `json:"github_url" validate:"omitempty,url"`
	PortfolioURL *string `json:"portfolio_url" validate:"omitempty,url"`
}

type CertificateRequest struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Issuer        string     `json:"issuer" validate:"required,max=200"`
	IssueDate     time.Time  `json:"issue_date" validate:"required"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CredentialID  string     `json:"credential_id" validate:"omitempty,max=200"`
	CredentialURL string     `json:"credential_url" validate:"omitempty,url"`
}

type ProfileQualityResponse struct {
	Score    float64                    `json:"score"`
	ScoredAt time.Time                  `json:"scored_at"`
	Analysis algorithms.ProfileAnalysis `json:"analysis"`
}

type CVUploadResponse struct {
	CV  models.CV `json:"cv"`
	URL string    `json:"url"`
}
