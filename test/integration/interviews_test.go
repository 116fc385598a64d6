package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/test/helpers"
)

// applyToJob files an application and returns its id.
func applyToJob(t *testing.T, ts *helpers.TestServer, candidateToken, jobID string) string {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", candidateToken, map[string]interface{}{
		"job_id": jobID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var application struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &application))
	return application.ID
}

func TestInterviews_ScheduleAndComplete(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "Platform Engineer")
	applicationID := applyToJob(t, ts, candidateToken, jobID)

	// Schedule
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews", employerToken, map[string]interface{}{
		"application_id": applicationID,
		"interview_type": "video",
		"scheduled_at":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"meeting_url":    "https://meet.example.com/abc",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var interview struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &interview))
	assert.Equal(t, "scheduled", interview.Status)

	// Scheduling moves the application along
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/"+applicationID, candidateToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var application struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &application))
	assert.Equal(t, "interview_scheduled", application.Status)

	// Both sides can read the interview
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/interviews/"+interview.ID, candidateToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Employer adds and scores a question
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interview.ID+"/questions", employerToken, map[string]interface{}{
		"question_text": "Describe a production incident you debugged.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var question struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &question))

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/interviews/"+interview.ID+"/questions/"+question.ID, employerToken, map[string]interface{}{
		"answer_text": "Walked through a connection pool exhaustion on the payment service.",
		"score":       85,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Complete with a rating
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interview.ID+"/complete", employerToken, map[string]interface{}{
		"interviewer_feedback": "Strong systems knowledge.",
		"interviewer_rating":   8,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var completed struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &completed))
	assert.Equal(t, "completed", completed.Status)

	// Candidate leaves feedback after completion
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interview.ID+"/feedback", candidateToken, map[string]interface{}{
		"rating":   5,
		"comments": "Well organized interview.",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
}

func TestInterviews_CandidateCannotSchedule(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "Data Engineer")
	applicationID := applyToJob(t, ts, candidateToken, jobID)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews", candidateToken, map[string]interface{}{
		"application_id": applicationID,
		"scheduled_at":   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestInterviews_Cancel(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "SRE")
	applicationID := applyToJob(t, ts, candidateToken, jobID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews", employerToken, map[string]interface{}{
		"application_id": applicationID,
		"scheduled_at":   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var interview struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &interview))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interview.ID+"/cancel", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// A cancelled interview cannot be completed
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interview.ID+"/complete", employerToken, map[string]interface{}{
		"interviewer_rating": 5,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
