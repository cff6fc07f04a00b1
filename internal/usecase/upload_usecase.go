package usecase

import (
	"context"
	"io"

	"blog/internal/domain/service"
)

// UploadInput is a single file received from a multipart form.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadOutput is where the stored file can be fetched from.
type UploadOutput struct {
	URL string
}

// UploadUsecase stores post images and serves them back.
type UploadUsecase interface {
	Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error)
	Open(ctx context.Context, name string) (*service.StoredImage, error)
}
