package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureEnvFile_CreatesFromTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, ".env.example")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(template, []byte("JWT_SECRET=\n"), 0o644))

	created, err := EnsureEnvFile(envPath, template)
	require.NoError(t, err)
	assert.True(t, created)

	content, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, "JWT_SECRET=\n", string(content))
}

func TestEnsureEnvFile_NeverOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, ".env.example")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(template, []byte("JWT_SECRET=\n"), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("JWT_SECRET=real-secret\n"), 0o600))

	created, err := EnsureEnvFile(envPath, template)
	require.NoError(t, err)
	assert.False(t, created)

	content, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, "JWT_SECRET=real-secret\n", string(content))
}

func TestEnsureEnvFile_MissingTemplate(t *testing.T) {
	dir := t.TempDir()

	created, err := EnsureEnvFile(filepath.Join(dir, ".env"), filepath.Join(dir, "nope.example"))
	assert.Error(t, err)
	assert.False(t, created)
}
