package service

import (
	"context"
	"io"
)

// StoredImage is an uploaded file opened for reading. Callers must close Body.
type StoredImage struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ImageStorage keeps uploaded images in a bucket.
type ImageStorage interface {
	// Save writes r under key.
	Save(ctx context.Context, key, contentType string, r io.Reader) error

	// Open returns the stored object. A missing key is domainerrors.ErrUploadNotFound.
	Open(ctx context.Context, key string) (*StoredImage, error)
}
