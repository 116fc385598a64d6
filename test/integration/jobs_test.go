package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/test/helpers"
)

func TestJobs_PublishAndPublicListing(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "Senior Go Engineer")

	// Published jobs are visible without authentication
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs?search=Senior+Go", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var listing struct {
		Jobs []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"jobs"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	require.NotEmpty(t, listing.Jobs)

	found := false
	for _, job := range listing.Jobs {
		if job.ID == jobID {
			found = true
			assert.Equal(t, "open", job.Status)
		}
	}
	assert.True(t, found, "published job should appear in the public listing")
}

func TestJobs_DraftIsInvisibleToOthers(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", employerToken, map[string]interface{}{
		"title":       "Unpublished Role",
		"description": "Draft position, not announced yet.",
		"location":    "Astana",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var job struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &job))
	assert.Equal(t, "draft", job.Status)

	// Anonymous lookup does not see drafts
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+job.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// The owner still sees it
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+job.ID, employerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestJobs_CandidateCannotCreate(t *testing.T) {
	ts := GetTestServer(t)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", candidateToken, map[string]interface{}{
		"title":       "Sneaky Job",
		"description": "Created by a candidate, should fail.",
		"location":    "Almaty",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestApplications_FullLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "Backend Developer")

	// Candidate applies
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", candidateToken, map[string]interface{}{
		"job_id":       jobID,
		"cover_letter": "I have five years of Go experience.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var application struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &application))
	assert.Equal(t, "submitted", application.Status)

	// Applying twice to the same job is rejected
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/applications", candidateToken, map[string]interface{}{
		"job_id": jobID,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// Employer sees the application on the job
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/applications", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, application.ID)

	// Employer moves it forward
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+application.ID+"/status", employerToken, map[string]interface{}{
		"status":  "under_review",
		"comment": "Looks promising",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Candidate withdraws
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/applications/"+application.ID+"/withdraw", candidateToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/"+application.ID, candidateToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var withdrawn struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &withdrawn))
	assert.Equal(t, "withdrawn", withdrawn.Status)
}

func TestApplications_NotesAndBulkStatus(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)
	firstToken, _ := helpers.RegisterCandidate(t, ts)
	secondToken, _ := helpers.RegisterCandidate(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "Platform Engineer")

	apply := func(token string) string {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", token, map[string]interface{}{
			"job_id": jobID,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		var app struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &app))
		return app.ID
	}
	firstApp := apply(firstToken)
	secondApp := apply(secondToken)

	// Notes stay between the employer's eyes
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications/"+firstApp+"/notes", employerToken, map[string]interface{}{
		"content": "Strong cover letter, schedule a call.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/"+firstApp+"/notes", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "schedule a call")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/"+firstApp+"/notes", firstToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Both applications move in one call
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/applications/bulk-status", employerToken, map[string]interface{}{
		"application_ids": []string{firstApp, secondApp},
		"status":          "under_review",
		"comment":         "First screening pass",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var bulk struct {
		Updated []string          `json:"updated"`
		Skipped map[string]string `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &bulk))
	assert.ElementsMatch(t, []string{firstApp, secondApp}, bulk.Updated)
	assert.Empty(t, bulk.Skipped)

	// Repeating the call skips everything
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/applications/bulk-status", employerToken, map[string]interface{}{
		"application_ids": []string{firstApp, secondApp},
		"status":          "under_review",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	require.NoError(t, json.Unmarshal([]byte(body), &bulk))
	assert.Empty(t, bulk.Updated)
	assert.Len(t, bulk.Skipped, 2)
}

func TestApplications_Shortlist(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)
	strangerToken, _ := helpers.RegisterEmployer(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "Data Engineer")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", candidateToken, map[string]interface{}{
		"job_id": jobID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// Scoring runs on the worker pool, so the shortlist may still be
	// empty here. Only the shape and the ownership check are asserted.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/shortlist", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "applications")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/shortlist", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestApplications_StrangerCannotRead(t *testing.T) {
	ts := GetTestServer(t)
	employerToken, _ := helpers.RegisterEmployer(t, ts)
	candidateToken, _ := helpers.RegisterCandidate(t, ts)
	strangerToken, _ := helpers.RegisterCandidate(t, ts)

	jobID := helpers.CreateOpenJob(t, ts, employerToken, "QA Engineer")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", candidateToken, map[string]interface{}{
		"job_id": jobID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var application struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &application))

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/"+application.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
