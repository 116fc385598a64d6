package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gorm.io/gorm"

	"smarthr_backend/database"
	"smarthr_backend/internal/app"
	"smarthr_backend/internal/config"
)

// TestServer runs the full API against a real Postgres database.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	cancel context.CancelFunc
}

// NewTestServer boots the API against the database named by
// TEST_DATABASE_URL. The test is skipped when the variable is unset, so
// unit test runs stay database-free.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skipping integration tests")
	}

	os.Setenv("DATABASE_URL", dsn)
	os.Setenv("SERVER_ENV", "test")
	os.Setenv("JWT_SECRET", "integration-test-secret-12345")

	config.LoadConfig()
	cfg := config.GetConfig()
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.SMS.Provider = "mock"
	cfg.Email.SMTPHost = ""

	db, err := database.Connect()
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", dsn, err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	router := app.SetupRouter(ctx, cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
		cancel: cancel,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.cancel()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// ClearTables truncates all application tables between test groups.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec(`TRUNCATE TABLE
		users, refresh_tokens, phone_verifications,
		profiles, cvs, certificates,
		jobs, job_views,
		applications, application_notes, application_status_histories,
		interviews, interview_questions, interview_feedbacks,
		region_statistics, industry_statistics, skill_demands, forecasts
		RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("failed to clear tables: %v", err)
	}
}

// SendRequest issues a JSON request against the test server and returns
// the response together with its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return res, string(resBody)
}
