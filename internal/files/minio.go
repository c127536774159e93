package files

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	dErrors "guild/pkg/domain-errors"
)

// MinioStore is the production BlobStore over an S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore wraps a minio client and ensures the bucket exists.
func NewMinioStore(ctx context.Context, client *minio.Client, bucket string) (*MinioStore, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create bucket")
		}
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

func (s *MinioStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, body, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to upload object")
	}
	return nil
}

func (s *MinioStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to download object")
	}
	return obj, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete object")
	}
	return nil
}

func (s *MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to stat object")
	}
	return true, nil
}

func (s *MinioStore) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to presign object url")
	}
	return u.String(), nil
}
