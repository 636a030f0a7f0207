package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Compile-time check that FileSystem implements ObjectStore.
var _ ObjectStore = (*FileSystem)(nil)

// FileSystem implements ObjectStore on the local filesystem, mirroring the
// key layout as directories under basePath. Intended for local development
// and tests.
type FileSystem struct {
	basePath   string
	publicBase string
}

// NewFileSystem creates a FileSystem store rooted at basePath. publicBase is
// prepended to keys when building URLs.
func NewFileSystem(basePath, publicBase string) *FileSystem {
	return &FileSystem{basePath: basePath, publicBase: strings.TrimRight(publicBase, "/")}
}

func (fs *FileSystem) path(key string) string {
	return filepath.Join(fs.basePath, filepath.FromSlash(key))
}

// Upload writes data under key using atomic write (temp file + rename).
func (fs *FileSystem) Upload(ctx context.Context, key string, data []byte, contentType string) (UploadedObject, error) {
	dst := fs.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return UploadedObject{}, &StorageError{Op: "upload", Key: key, Err: fmt.Errorf("creating directory: %w", err)}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "upload-*")
	if err != nil {
		return UploadedObject{}, &StorageError{Op: "upload", Key: key, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return UploadedObject{}, &StorageError{Op: "upload", Key: key, Err: fmt.Errorf("writing data: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return UploadedObject{}, &StorageError{Op: "upload", Key: key, Err: fmt.Errorf("closing temp file: %w", err)}
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return UploadedObject{}, &StorageError{Op: "upload", Key: key, Err: fmt.Errorf("renaming temp file: %w", err)}
	}

	// Rename succeeded; prevent deferred cleanup from removing the final file.
	tmpPath = ""

	return UploadedObject{Key: key, URL: fs.PublicURL(key)}, nil
}

// Delete removes the file under key. It is idempotent: deleting a missing
// key returns no error.
func (fs *FileSystem) Delete(ctx context.Context, key string) error {
	if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Exists checks whether a file exists under key.
func (fs *FileSystem) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(fs.path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &StorageError{Op: "stat", Key: key, Err: err}
}

// PublicURL returns the URL for a key under the configured public base.
func (fs *FileSystem) PublicURL(key string) string {
	return fs.publicBase + "/" + key
}
