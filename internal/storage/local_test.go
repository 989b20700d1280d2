package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreUpload(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost:8080/uploads/")

	url, err := store.Upload(context.Background(), "evento-2025/1710000000_gomez.jpg", "image/jpeg", strings.NewReader("fake-jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/evento-2025/1710000000_gomez.jpg", url)

	content, err := os.ReadFile(filepath.Join(root, "evento-2025", "1710000000_gomez.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(content))
}

func TestLocalStoreRejectsEscapingPaths(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080/uploads")

	_, err := store.Upload(context.Background(), "../outside.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = store.Upload(context.Background(), "/etc/passwd", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)
}
