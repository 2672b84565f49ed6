package storage

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
)

// GCSUploader publishes specimen images to a Google Cloud Storage bucket.
type GCSUploader struct {
	client *gcs.Client
	bucket string
	folder string
}

func NewGCSUploader(client *gcs.Client, bucket, folder string) (*GCSUploader, error) {
	if client == nil || bucket == "" {
		return nil, errors.New("gcs not configured")
	}
	return &GCSUploader{client: client, bucket: bucket, folder: folder}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, img repository.ImageFile) (string, error) {
	name := objectName(u.folder, img.Filename, img.ContentType)
	url, err := helpers.UploadObject(ctx, u.client, u.bucket, name, img.ContentType, img.Body)
	if err != nil {
		return "", fmt.Errorf("gcs upload %s: %w", name, err)
	}
	return url, nil
}

var _ repository.ImageUploader = (*GCSUploader)(nil)
