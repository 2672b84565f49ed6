package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

// MinioUploader publishes specimen images to an S3-compatible MinIO bucket.
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	folder  string
	baseURL string
}

// NewMinioUploader connects to MinIO and makes sure the bucket exists.
// publicURL overrides the URL prefix handed back to clients; when empty it is
// derived from the endpoint.
func NewMinioUploader(ctx context.Context, endpoint, accessKey, secretKey, bucket, folder, publicURL string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &MinioUploader{
		client:  client,
		bucket:  bucket,
		folder:  folder,
		baseURL: minioBaseURL(endpoint, bucket, publicURL, useSSL),
	}, nil
}

func minioBaseURL(endpoint, bucket, publicURL string, useSSL bool) string {
	if publicURL != "" {
		return strings.TrimRight(publicURL, "/")
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return scheme + "://" + endpoint + "/" + bucket
}

func (u *MinioUploader) Upload(ctx context.Context, img repository.ImageFile) (string, error) {
	name := objectName(u.folder, img.Filename, img.ContentType)
	size := img.Size
	if size <= 0 {
		size = -1
	}
	_, err := u.client.PutObject(ctx, u.bucket, name, img.Body, size, minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio upload %s: %w", name, err)
	}
	return u.baseURL + "/" + name, nil
}

var _ repository.ImageUploader = (*MinioUploader)(nil)
