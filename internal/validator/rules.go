package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"

	"smarthr_backend/internal/models"
)

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validator: failed to register rule '" + tag + "': " + err.Error())
	}
}

func registerCustomRules(v *validator.Validate) {
	mustRegister(v, "is-user-role", validateUserRole)
	mustRegister(v, "is-job-status", validateJobStatus)
	mustRegister(v, "is-job-type", validateJobType)
	mustRegister(v, "is-application-status", validateApplicationStatus)
	mustRegister(v, "is-interview-type", validateInterviewType)
	mustRegister(v, "is-interview-status", validateInterviewStatus)
	mustRegister(v, "is-forecast-type", validateForecastType)
	mustRegister(v, "sms-code", validateSMSCode)
}

// Registration only accepts the self-service roles. Gov and admin
// accounts are provisioned by an administrator.
func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.UserRoleCandidate, models.UserRoleEmployer:
		return true
	}
	return false
}

func validateJobStatus(fl validator.FieldLevel) bool {
	switch models.JobStatus(fl.Field().String()) {
	case models.JobStatusDraft, models.JobStatusOpen, models.JobStatusClosed, models.JobStatusFilled:
		return true
	}
	return false
}

func validateJobType(fl validator.FieldLevel) bool {
	switch models.JobType(fl.Field().String()) {
	case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeContract,
		models.JobTypeInternship, models.JobTypeRemote:
		return true
	}
	return false
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	status := models.ApplicationStatus(fl.Field().String())
	for _, s := range models.AllApplicationStatuses {
		if status == s {
			return true
		}
	}
	return false
}

func validateInterviewType(fl validator.FieldLevel) bool {
	switch models.InterviewType(fl.Field().String()) {
	case models.InterviewTypePhone, models.InterviewTypeVideo,
		models.InterviewTypeInPerson, models.InterviewTypeTechnical:
		return true
	}
	return false
}

func validateInterviewStatus(fl validator.FieldLevel) bool {
	switch models.InterviewStatus(fl.Field().String()) {
	case models.InterviewStatusScheduled, models.InterviewStatusInProgress,
		models.InterviewStatusCompleted, models.InterviewStatusCancelled,
		models.InterviewStatusNoShow, models.InterviewStatusRescheduled:
		return true
	}
	return false
}

func validateForecastType(fl validator.FieldLevel) bool {
	switch models.ForecastType(fl.Field().String()) {
	case models.ForecastTypeUnemployment, models.ForecastTypeJobGrowth,
		models.ForecastTypeSkillDemand, models.ForecastTypeSalaryTrend:
		return true
	}
	return false
}

func validateSMSCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
