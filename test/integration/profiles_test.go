package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/test/helpers"
)

func TestProfiles_CreatedOnRegistration(t *testing.T) {
	ts := GetTestServer(t)
	token, userID := helpers.RegisterCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var profile struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	assert.Equal(t, userID, profile.UserID)
}

func TestProfiles_UpdateAndQuality(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.RegisterCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/profiles/me", token, map[string]interface{}{
		"bio":      "Backend engineer focused on distributed systems.",
		"location": "Almaty",
		"skills":   []string{"Go", "PostgreSQL", "Kubernetes"},
		"education": []map[string]interface{}{
			{"institution": "KBTU", "degree": "BSc Computer Science", "year": 2019},
		},
		"experience": []map[string]interface{}{
			{"company": "Kolesa Group", "title": "Software Engineer", "years": 3},
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var profile struct {
		Bio    string   `json:"bio"`
		Skills []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	assert.Contains(t, profile.Skills, "Go")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me/quality", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var quality struct {
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &quality))
	assert.Greater(t, quality.Score, 0.0)
}

func TestProfiles_RejectsBadPayload(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.RegisterCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/profiles/me", token, map[string]interface{}{
		"linkedin_url": "not a url",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestProfiles_CVUploadRoundTrip(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.RegisterCandidate(t, ts)

	// Build a multipart body with a tiny fake PDF
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="resume.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 experience with Go and PostgreSQL"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/api/v1/profiles/me/cv", &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	bodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	body := string(bodyBytes)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var uploaded struct {
		CV struct {
			ID string `json:"id"`
		} `json:"cv"`
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(bodyBytes, &uploaded))
	require.NotEmpty(t, uploaded.CV.ID)

	// Download link resolves
	res2, body2 := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me/cv/"+uploaded.CV.ID+"/download", token, nil)
	require.Equal(t, http.StatusOK, res2.StatusCode, body2)
	assert.Contains(t, body2, "url")

	// Delete
	res2, body2 = ts.SendRequest(t, http.MethodDelete, "/api/v1/profiles/me/cv/"+uploaded.CV.ID, token, nil)
	assert.Equal(t, http.StatusOK, res2.StatusCode, body2)
}
