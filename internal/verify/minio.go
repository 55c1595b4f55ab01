package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"treko/internal/config"
)

type minioStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore creates an S3-backed ObjectStore for captured media.
func NewObjectStore(conf config.S3Config) (ObjectStore, error) {
	region := conf.Region
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: conf.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client failed: %w", err)
	}
	return &minioStore{client: client, bucket: conf.Bucket}, nil
}

// FetchURL resolves a path-style object URL. The first path segment is the
// bucket, the remainder the object key; URLs without a bucket segment fall
// back to the configured bucket.
func (s *minioStore) FetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media url %q: %w", rawURL, err)
	}
	path := strings.TrimPrefix(u.Path, "/")
	if path == "" {
		return nil, fmt.Errorf("media url %q has no object path", rawURL)
	}

	bucket := s.bucket
	if idx := strings.IndexByte(path, '/'); idx > 0 {
		bucket, path = path[:idx], path[idx+1:]
	}
	return s.fetch(ctx, bucket, path)
}

func (s *minioStore) FetchKey(ctx context.Context, key string) ([]byte, error) {
	return s.fetch(ctx, s.bucket, strings.TrimPrefix(key, "/"))
}

// IsNotFound reports whether err means the object does not exist, as opposed
// to the store being unreachable.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	resp := minio.ToErrorResponse(errors.Unwrap(err))
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}

func (s *minioStore) fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s failed: %w", bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s/%s failed: %w", bucket, key, err)
	}
	return data, nil
}
