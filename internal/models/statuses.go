package models

type UserRole string
type JobStatus string
type JobType string
type ApplicationStatus string
type InterviewType string
type InterviewStatus string
type ForecastType string

const (
	UserRoleCandidate  UserRole = "candidate"
	UserRoleEmployer   UserRole = "employer"
	UserRoleGovernment UserRole = "gov"
	UserRoleAdmin      UserRole = "admin"

	JobStatusDraft  JobStatus = "draft"
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusFilled JobStatus = "filled"

	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"

	ApplicationStatusSubmitted          ApplicationStatus = "submitted"
	ApplicationStatusUnderReview        ApplicationStatus = "under_review"
	ApplicationStatusShortlisted        ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusInterviewed        ApplicationStatus = "interviewed"
	ApplicationStatusOfferSent          ApplicationStatus = "offer_sent"
	ApplicationStatusAccepted           ApplicationStatus = "accepted"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn          ApplicationStatus = "withdrawn"

	InterviewTypePhone     InterviewType = "phone"
	InterviewTypeVideo     InterviewType = "video"
	InterviewTypeInPerson  InterviewType = "in_person"
	InterviewTypeTechnical InterviewType = "technical"

	InterviewStatusScheduled   InterviewStatus = "scheduled"
	InterviewStatusInProgress  InterviewStatus = "in_progress"
	InterviewStatusCompleted   InterviewStatus = "completed"
	InterviewStatusCancelled   InterviewStatus = "cancelled"
	InterviewStatusRescheduled InterviewStatus = "rescheduled"
	InterviewStatusNoShow      InterviewStatus = "no_show"

	ForecastTypeUnemployment ForecastType = "unemployment"
	ForecastTypeJobGrowth    ForecastType = "job_growth"
	ForecastTypeSkillDemand  ForecastType = "skill_demand"
	ForecastTypeSalaryTrend  ForecastType = "salary_trend"
)

// AllApplicationStatuses enumerates the valid application states in lifecycle order.
var AllApplicationStatuses = []ApplicationStatus{
	ApplicationStatusSubmitted,
	ApplicationStatusUnderReview,
	ApplicationStatusShortlisted,
	ApplicationStatusInterviewScheduled,
	ApplicationStatusInterviewed,
	ApplicationStatusOfferSent,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

// IsFinal reports whether the status terminates the application lifecycle.
func (s ApplicationStatus) IsFinal() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}
