package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8000/files/",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	key := "cv/user-1/resume.pdf"
	require.NoError(t, s.Save(ctx, key, strings.NewReader("pdf-bytes"), "application/pdf"))

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(len("pdf-bytes")), size)

	rc, err := s.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "pdf-bytes", string(data))

	require.NoError(t, s.Delete(ctx, key))
	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestLocalStorage(t)
	assert.NoError(t, s.Delete(context.Background(), "never/was/there.txt"))
}

func TestLocalStorage_ConfinesKeysToBase(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	for _, key := range []string{"..", "", "/", "."} {
		err := s.Save(ctx, key, strings.NewReader("x"), "text/plain")
		assert.Error(t, err, "key %q must be rejected", key)

		_, err = s.Get(ctx, key)
		assert.Error(t, err, "key %q must be rejected", key)
	}

	// Traversal segments are stripped, the write lands inside the base
	// directory instead of escaping it.
	require.NoError(t, s.Save(ctx, "../../etc/passwd", strings.NewReader("x"), "text/plain"))
	exists, err := s.Exists(ctx, "etc/passwd")
	require.NoError(t, err)
	assert.True(t, exists)

	// Dot segments inside the tree are fine once cleaned.
	require.NoError(t, s.Save(ctx, "a/./b.txt", strings.NewReader("x"), "text/plain"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	url, err := s.GetURL(ctx, "cv/resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/files/cv/resume.pdf", url)

	bare, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	url, err = bare.GetURL(ctx, "cv/resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/files/cv/resume.pdf", url)
}
