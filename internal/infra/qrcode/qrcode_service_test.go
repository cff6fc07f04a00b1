package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"blog/config"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(size int, level, baseURL string) *qrcodeService {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{
		Size:                 size,
		ErrorCorrectionLevel: level,
		BaseURL:              baseURL,
	}})

	return svc.(*qrcodeService)
}

func TestNewQRCodeService_RecoveryLevel(t *testing.T) {
	tests := []struct {
		level string
		want  qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"M", qrcode.Medium},
		{"q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, newTestService(256, tt.level, "").errorCorrectionLevel)
		})
	}
}

func TestNewQRCodeService_Defaults(t *testing.T) {
	svc, ok := NewQRCodeService(&config.Config{}).(*qrcodeService)
	require.True(t, ok)
	assert.Equal(t, defaultSize, svc.size)
	assert.Equal(t, qrcode.Medium, svc.errorCorrectionLevel)
}

func TestQRCodeService_PostURL(t *testing.T) {
	svc := newTestService(256, "M", "https://blog.example.com/")
	id := uuid.MustParse("0190b5a8-7c1e-7000-8000-000000000001")

	assert.Equal(t, "https://blog.example.com/posts/0190b5a8-7c1e-7000-8000-000000000001", svc.PostURL(id))
}

func TestQRCodeService_GeneratePostQR(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		svc := newTestService(size, "M", "http://localhost:5173")

		pngBytes, err := svc.GeneratePostQR(uuid.New())
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(pngBytes))
		require.NoError(t, err)
		assert.Equal(t, size, img.Bounds().Dx())
		assert.Equal(t, size, img.Bounds().Dy())
	}
}
