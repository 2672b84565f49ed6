package storage

import (
	"context"
	"errors"

	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

// ErrUploadsDisabled is returned when IMAGE_STORE=none.
var ErrUploadsDisabled = errors.New("image uploads are disabled")

// DisabledUploader rejects every upload. Records without images still work.
type DisabledUploader struct{}

func (DisabledUploader) Upload(context.Context, repository.ImageFile) (string, error) {
	return "", ErrUploadsDisabled
}
