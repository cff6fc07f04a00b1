package impl

import (
	"context"
	"log/slog"
	"path"
	"slices"
	"strings"

	"blog/config"
	deliverycontext "blog/internal/delivery/context"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/service"
	"blog/internal/usecase"
	"blog/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type uploadService struct {
	storage      service.ImageStorage
	publicPrefix string
	maxSize      int64
	allowedTypes []string
	logger       *slog.Logger
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	Storage service.ImageStorage
	Config  *config.Config
	Logger  *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(params UploadServiceParams) usecase.UploadUsecase {
	srv := &uploadService{
		storage:      params.Storage,
		publicPrefix: config.DefaultPublicPrefix,
		maxSize:      config.DefaultMaxUploadSize,
		logger:       params.Logger,
	}

	if cfg := params.Config.Storage; cfg != nil {
		if cfg.PublicPrefix != "" {
			srv.publicPrefix = strings.TrimRight(cfg.PublicPrefix, "/")
		}
		if cfg.MaxUploadSize > 0 {
			srv.maxSize = cfg.MaxUploadSize
		}
		srv.allowedTypes = cfg.AllowedTypes
	}

	return srv
}

func (srv *uploadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload validates the file and stores it under a fresh, collision-free name.
func (srv *uploadService) Upload(ctx context.Context, input *usecase.UploadInput) (*usecase.UploadOutput, error) {
	if input.Size > srv.maxSize {
		return nil, domainerrors.ErrUploadRejected.WithDetails("file exceeds " + util.FormatBytes(srv.maxSize))
	}

	contentType := mediaType(input.ContentType)
	if len(srv.allowedTypes) > 0 && !slices.Contains(srv.allowedTypes, contentType) {
		return nil, domainerrors.ErrUploadRejected.WithDetails("unsupported content type " + contentType)
	}

	name := util.SanitizeFilename(input.Filename)
	if name == "" {
		return nil, domainerrors.ErrUploadRejected.WithDetails("missing file name")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate upload id")
	}
	key := id.String() + "-" + name

	if err := srv.storage.Save(ctx, key, contentType, input.Body); err != nil {
		return nil, errors.Wrap(err, "failed to store upload")
	}

	srv.log(ctx).Info("File uploaded",
		slog.String("key", key),
		slog.String("contentType", contentType),
		slog.String("size", util.FormatBytes(input.Size)),
	)

	return &usecase.UploadOutput{URL: path.Join(srv.publicPrefix, key)}, nil
}

// Open returns a stored upload. Names that could not have been produced by Upload are not found.
func (srv *uploadService) Open(ctx context.Context, name string) (*service.StoredImage, error) {
	if name == "" || util.SanitizeFilename(name) != name {
		return nil, domainerrors.ErrUploadNotFound
	}

	img, err := srv.storage.Open(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload")
	}

	return img, nil
}

// mediaType strips parameters such as "; charset=utf-8" from a Content-Type value.
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")

	return strings.ToLower(strings.TrimSpace(mt))
}
