package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
)

type authPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

// RegisterUser registers an account through the API and returns its
// access token and user id.
func RegisterUser(t *testing.T, ts *TestServer, username string, role models.UserRole) (token, userID string) {
	t.Helper()

	body := map[string]interface{}{
		"username":         username,
		"email":            fmt.Sprintf("%s@test.local", username),
		"password":         "password123",
		"password_confirm": "password123",
		"full_name":        "Test " + username,
		"role":             role,
	}
	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "register failed: %s", resBody)

	var auth authPayload
	require.NoError(t, json.Unmarshal([]byte(resBody), &auth))
	require.NotEmpty(t, auth.AccessToken)
	require.NotEmpty(t, auth.User.ID)

	return auth.AccessToken, auth.User.ID
}

// UniqueName appends a nanosecond suffix so repeated runs never collide
// on the unique username/email columns.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// RegisterCandidate registers a fresh candidate account.
func RegisterCandidate(t *testing.T, ts *TestServer) (token, userID string) {
	return RegisterUser(t, ts, UniqueName("candidate"), models.UserRoleCandidate)
}

// RegisterEmployer registers a fresh employer account.
func RegisterEmployer(t *testing.T, ts *TestServer) (token, userID string) {
	return RegisterUser(t, ts, UniqueName("employer"), models.UserRoleEmployer)
}

// PromoteToRole flips a user's role directly in the database. Gov and
// admin accounts cannot self-register, tests provision them this way.
func PromoteToRole(t *testing.T, ts *TestServer, userID string, role models.UserRole) {
	t.Helper()
	err := ts.DB.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error
	require.NoError(t, err)
}

// CreateOpenJob creates and publishes a job through the API, returning
// the job id.
func CreateOpenJob(t *testing.T, ts *TestServer, employerToken, title string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", employerToken, map[string]interface{}{
		"title":           title,
		"description":     "We are looking for a backend engineer with Go experience.",
		"location":        "Almaty",
		"job_type":        "full_time",
		"required_skills": []string{"Go", "PostgreSQL"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "create job failed: %s", body)

	var job struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &job))
	require.NotEmpty(t, job.ID)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/publish", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "publish job failed: %s", body)

	return job.ID
}
