package integration_test

import (
	"os"
	"sync"
	"testing"

	"smarthr_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer boots the shared test server on first use. Tests are
// skipped entirely when TEST_DATABASE_URL is not set.
func GetTestServer(t *testing.T) *helpers.TestServer {
	serverOnce.Do(func() {
		globalTestServer = helpers.NewTestServer(t)
		globalTestServer.ClearTables(t)
	})
	if globalTestServer == nil {
		t.Skip("TEST_DATABASE_URL is not set, skipping integration tests")
	}
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()
	if globalTestServer != nil {
		globalTestServer.Close()
	}
	os.Exit(code)
}
