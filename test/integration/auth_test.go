package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
	"smarthr_backend/test/helpers"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	ts := GetTestServer(t)
	username := helpers.UniqueName("registrant")

	token, _ := helpers.RegisterUser(t, ts, username, models.UserRoleCandidate)
	require.NotEmpty(t, token)

	// Login with the username
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login":    username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var auth struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auth))
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)

	// Login with the email works too
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login":    username + "@test.local",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestAuth_DuplicateUsername(t *testing.T) {
	ts := GetTestServer(t)
	username := helpers.UniqueName("dup")

	helpers.RegisterUser(t, ts, username, models.UserRoleCandidate)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":         username,
		"password":         "password123",
		"password_confirm": "password123",
		"full_name":        "Second Account",
		"role":             "candidate",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestAuth_RegisterRejectsMismatchedConfirmation(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":         helpers.UniqueName("typo"),
		"password":         "password123",
		"password_confirm": "password124",
		"full_name":        "Fat Fingers",
		"role":             "candidate",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "password_confirm")
}

func TestAuth_WrongPassword(t *testing.T) {
	ts := GetTestServer(t)
	username := helpers.UniqueName("wrongpass")

	helpers.RegisterUser(t, ts, username, models.UserRoleCandidate)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login":    username,
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_AdminRoleCannotSelfRegister(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":         helpers.UniqueName("wannabe"),
		"password":         "password123",
		"password_confirm": "password123",
		"full_name":        "Wannabe Admin",
		"role":             "admin",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestAuth_RefreshRotation(t *testing.T) {
	ts := GetTestServer(t)
	username := helpers.UniqueName("refresher")

	helpers.RegisterUser(t, ts, username, models.UserRoleCandidate)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login":    username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var auth struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auth))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": auth.RefreshToken,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var refreshed struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, auth.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is single use
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": auth.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestUsers_Me(t *testing.T) {
	ts := GetTestServer(t)
	token, userID := helpers.RegisterCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var me struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &me))
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "candidate", me.Role)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
