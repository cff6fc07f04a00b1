package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for post share code generation
type QRCodeService interface {
	// PostURL returns the public address of a post
	PostURL(postID uuid.UUID) string

	// GeneratePostQR renders a PNG QR code pointing at the post's public address
	GeneratePostQR(postID uuid.UUID) ([]byte, error)
}
