package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemUpload(t *testing.T) {
	fs := NewFileSystem(t.TempDir(), "http://localhost:8080/images")
	data := []byte("encoded image bytes")

	obj, err := fs.Upload(context.Background(), "general/123-abc.jpg", data, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "general/123-abc.jpg", obj.Key)
	assert.Equal(t, "http://localhost:8080/images/general/123-abc.jpg", obj.URL)

	// Verify the file exists on disk at the expected path.
	content, err := os.ReadFile(filepath.Join(fs.basePath, "general", "123-abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, data, content)
}

func TestFileSystemUpload_NestedKey(t *testing.T) {
	fs := NewFileSystem(t.TempDir(), "http://localhost")

	_, err := fs.Upload(context.Background(), "general/thumbnails/123-abc.jpg", []byte("thumb"), "image/jpeg")
	require.NoError(t, err)

	exists, err := fs.Exists(context.Background(), "general/thumbnails/123-abc.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileSystemDelete(t *testing.T) {
	fs := NewFileSystem(t.TempDir(), "http://localhost")
	ctx := context.Background()

	_, err := fs.Upload(ctx, "general/del-me.jpg", []byte("bytes"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, "general/del-me.jpg"))

	exists, err := fs.Exists(ctx, "general/del-me.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	// Idempotent: deleting again is not an error.
	assert.NoError(t, fs.Delete(ctx, "general/del-me.jpg"))
}

func TestFileSystemExists_Missing(t *testing.T) {
	fs := NewFileSystem(t.TempDir(), "http://localhost")

	exists, err := fs.Exists(context.Background(), "nope/missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileSystemPublicURL_TrimsTrailingSlash(t *testing.T) {
	fs := NewFileSystem(t.TempDir(), "http://cdn.example.com/")
	assert.Equal(t, "http://cdn.example.com/a/b.jpg", fs.PublicURL("a/b.jpg"))
}
