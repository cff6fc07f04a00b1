package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"blog/internal/delivery/api/response"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UploadFormField is the multipart field carrying the image.
const UploadFormField = "image"

// UploadHandlerParams holds dependencies for UploadHandler, injected by Fx.
type UploadHandlerParams struct {
	fx.In

	UploadUC usecase.UploadUsecase
	Logger   *slog.Logger
}

// UploadHandler accepts post images and serves them back.
type UploadHandler struct {
	uploadUC usecase.UploadUsecase
	logger   *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler.
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{
		uploadUC: params.UploadUC,
		logger:   params.Logger,
	}
}

// UploadResponse tells the client where the stored image lives.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /upload with a multipart "image" field.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile(UploadFormField)
	if err != nil {
		return domainerrors.ErrUploadRejected.WithDetails("missing " + UploadFormField + " file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	output, err := h.uploadUC.Upload(c.Request().Context(), &usecase.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UploadResponse{URL: output.URL})
}

// Serve handles GET /uploads/:name.
func (h *UploadHandler) Serve(c echo.Context) error {
	img, err := h.uploadUC.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer img.Body.Close()

	contentType := img.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	header := c.Response().Header()
	header.Set("X-Content-Type-Options", "nosniff")
	if img.Size >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(img.Size, 10))
	}

	return c.Stream(http.StatusOK, contentType, img.Body)
}
