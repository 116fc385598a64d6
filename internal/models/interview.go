package models

import (
	"time"

	"gorm.io/datatypes"
)

type Interview struct {
	BaseModel
	ApplicationID string       `gorm:"type:uuid;not null;index" json:"application_id"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`

	InterviewType InterviewType   `gorm:"type:varchar(20);default:'video'" json:"interview_type"`
	Status        InterviewStatus `gorm:"type:varchar(20);default:'scheduled';index:idx_interviews_status_scheduled,priority:1" json:"status"`

	ScheduledAt     time.Time `gorm:"not null;index:idx_interviews_status_scheduled,priority:2" json:"scheduled_at"`
	DurationMinutes int       `gorm:"default:60" json:"duration_minutes"`
	Location        string    `json:"location"`
	MeetingURL      string    `json:"meeting_url"`

	InterviewerID *string `gorm:"type:uuid" json:"interviewer_id"`
	Interviewer   *User   `gorm:"foreignKey:InterviewerID" json:"interviewer,omitempty"`

	VideoURL string `json:"video_url"`
	VideoKey string `json:"video_key"`

	// Populated asynchronously by the video-review worker.
	Review   datatypes.JSON `gorm:"type:jsonb" json:"review"`
	Score    *float64       `json:"score"`
	ScoredAt *time.Time     `json:"scored_at"`

	InterviewerFeedback string `gorm:"type:text" json:"interviewer_feedback"`
	InterviewerRating   *int   `json:"interviewer_rating"` // 1-10

	Notes string `gorm:"type:text" json:"notes"`

	CompletedAt    *time.Time `json:"completed_at"`
	ReminderSentAt *time.Time `json:"reminder_sent_at"`

	Questions         []InterviewQuestion `gorm:"foreignKey:InterviewID" json:"questions,omitempty"`
	CandidateFeedback *InterviewFeedback  `gorm:"foreignKey:InterviewID" json:"candidate_feedback,omitempty"`
}

func (i *Interview) IsUpcoming(now time.Time) bool {
	return i.Status == InterviewStatusScheduled && i.ScheduledAt.After(now)
}

type InterviewQuestion struct {
	BaseModel
	InterviewID  string   `gorm:"type:uuid;not null;index" json:"interview_id"`
	QuestionText string   `gorm:"type:text;not null" json:"question_text"`
	AnswerText   string   `gorm:"type:text" json:"answer_text"`
	Score        *float64 `json:"score"`
	Order        int      `gorm:"column:question_order;default:0" json:"order"`
}

// InterviewFeedback is the candidate's rating of the interview experience.
type InterviewFeedback struct {
	BaseModel
	InterviewID string `gorm:"type:uuid;uniqueIndex;not null" json:"interview_id"`
	Rating      int    `gorm:"not null" json:"rating"` // 1-5
	Comments    string `gorm:"type:text" json:"comments"`
}
