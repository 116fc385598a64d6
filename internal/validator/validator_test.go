package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/services/dto"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return vErr
}

func TestValidate_RegisterRequest(t *testing.T) {
	v := New()

	valid := dto.RegisterRequest{
		Username:        "aliya",
		Email:           "aliya@example.com",
		Password:        "password1",
		PasswordConfirm: "password1",
		FullName:        "Aliya Nurgaliyeva",
		Role:            models.UserRoleCandidate,
	}
	assert.NoError(t, v.Validate(valid))
}

func TestValidate_RegisterRequiresMatchingConfirmation(t *testing.T) {
	v := New()

	base := dto.RegisterRequest{
		Username: "aliya",
		Password: "password1",
		FullName: "Aliya Nurgaliyeva",
		Role:     models.UserRoleCandidate,
	}

	// Missing confirmation
	vErr := requireValidationError(t, v.Validate(base))
	assert.Contains(t, vErr.Errors, "password_confirm")

	// Mismatched confirmation
	base.PasswordConfirm = "password2"
	vErr = requireValidationError(t, v.Validate(base))
	assert.Contains(t, vErr.Errors, "password_confirm")
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(dto.RegisterRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "short",
		FullName: "A",
		Role:     models.UserRole("superuser"),
	})

	vErr := requireValidationError(t, err)
	assert.Contains(t, vErr.Errors, "username")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.Contains(t, vErr.Errors, "full_name")
	assert.Contains(t, vErr.Errors, "role")
	assert.Equal(t, "Must be 'candidate' or 'employer'", vErr.Errors["role"])
}

func TestValidate_RejectsPrivilegedRoles(t *testing.T) {
	v := New()

	for _, role := range []models.UserRole{models.UserRoleGovernment, models.UserRoleAdmin} {
		err := v.Validate(dto.RegisterRequest{
			Username: "someone",
			Password: "password1",
			FullName: "Some One",
			Role:     role,
		})
		vErr := requireValidationError(t, err)
		assert.Contains(t, vErr.Errors, "role", "role %q must not self-register", role)
	}
}

func TestValidate_SMSCode(t *testing.T) {
	v := New()

	type payload struct {
		Code string `json:"code" validate:"sms-code"`
	}

	assert.NoError(t, v.Validate(payload{Code: "123456"}))

	for _, bad := range []string{"12345", "1234567", "12a456", ""} {
		err := v.Validate(payload{Code: bad})
		vErr := requireValidationError(t, err)
		assert.Equal(t, "Must be a 6-digit code", vErr.Errors["code"])
	}
}

func TestValidate_ForecastType(t *testing.T) {
	v := New()

	type payload struct {
		Type models.ForecastType `json:"type" validate:"is-forecast-type"`
	}

	assert.NoError(t, v.Validate(payload{Type: models.ForecastTypeUnemployment}))

	err := v.Validate(payload{Type: models.ForecastType("weather")})
	vErr := requireValidationError(t, err)
	assert.Contains(t, vErr.Errors, "type")
}
