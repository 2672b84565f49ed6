package storage

import (
	"context"
	"fmt"

	"github.com/oksasatya/specimen-catalog/config"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
)

// NewUploaderFromConfig builds the ImageUploader selected by IMAGE_STORE.
// The returned close func releases any client it opened and is never nil.
func NewUploaderFromConfig(ctx context.Context, cfg *config.Config) (repository.ImageUploader, func() error, error) {
	noop := func() error { return nil }
	switch cfg.ImageStore {
	case "gcs":
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, noop, fmt.Errorf("gcs client: %w", err)
		}
		u, err := NewGCSUploader(client, cfg.GCSBucket, cfg.ImageFolder)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return u, client.Close, nil
	case "minio":
		u, err := NewMinioUploader(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.ImageFolder, cfg.MinioPublicURL, cfg.MinioUseSSL)
		if err != nil {
			return nil, noop, err
		}
		return u, noop, nil
	case "none", "":
		return DisabledUploader{}, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown image store: %s", cfg.ImageStore)
	}
}
