package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Compile-time check that Minio implements ObjectStore.
var _ ObjectStore = (*Minio)(nil)

// Minio implements ObjectStore against a MinIO (or any S3-compatible)
// backend.
type Minio struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinio creates a MinIO client, ensures the bucket exists with a
// public-read policy, and returns a ready-to-use store.
func NewMinio(endpoint, accessKey, secretKey, bucket, publicBase string, useSSL bool) (*Minio, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
	}

	if err := client.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return &Minio{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload writes data under key with the exact byte count so MinIO does not
// buffer the body.
func (s *Minio) Upload(ctx context.Context, key string, data []byte, contentType string) (UploadedObject, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return UploadedObject{}, &StorageError{Op: "upload", Key: key, Err: err}
	}
	return UploadedObject{Key: key, URL: s.PublicURL(key)}, nil
}

// Delete removes the object at key. MinIO treats removal of a missing object
// as success, so Delete is idempotent.
func (s *Minio) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Exists reports whether an object is stored under key.
func (s *Minio) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, &StorageError{Op: "stat", Key: key, Err: err}
	}
	return true, nil
}

// PublicURL returns the browser-accessible URL for the given key.
func (s *Minio) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET
// on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
