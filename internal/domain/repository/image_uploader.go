package repository

import (
	"context"
	"io"
)

// ImageFile is an image ready to be sent to the image host.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageUploader stores an image remotely and returns its public URL.
// Implementations do not retry.
type ImageUploader interface {
	Upload(ctx context.Context, img ImageFile) (string, error)
}
