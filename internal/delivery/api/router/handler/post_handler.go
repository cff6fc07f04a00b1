package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/response"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/query"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PostHandlerParams holds dependencies for PostHandler, injected by Fx.
type PostHandlerParams struct {
	fx.In

	PostUC usecase.PostUsecase
	Logger *slog.Logger
}

// PostHandler serves the /posts endpoints.
type PostHandler struct {
	postUC usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler.
func NewPostHandler(params PostHandlerParams) *PostHandler {
	return &PostHandler{
		postUC: params.PostUC,
		logger: params.Logger,
	}
}

// PostRequest is the body of create and update. Update overwrites every field.
type PostRequest struct {
	Title    string   `json:"title" validate:"required,max=256"`
	Text     string   `json:"text" validate:"required"`
	ImageURL string   `json:"imageUrl" validate:"omitempty,max=2048"`
	Tags     []string `json:"tags" validate:"max=32,dive,max=64"`
}

func (r *PostRequest) toInput() *usecase.PostInput {
	return &usecase.PostInput{
		Title:    r.Title,
		Text:     r.Text,
		ImageURL: r.ImageURL,
		Tags:     r.Tags,
	}
}

// PostListResponse is one page of the post listing.
type PostListResponse struct {
	Posts []*entity.Post `json:"posts"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Pages int64          `json:"pages"`
}

// List handles GET /posts?page=&limit=. Missing or malformed values fall back to defaults.
func (h *PostHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.postUC.List(c.Request().Context(), &usecase.ListPostsInput{Page: page, Limit: limit})
	if err != nil {
		return errors.WithStack(err)
	}

	posts := result.Posts
	if posts == nil {
		posts = []*entity.Post{}
	}

	return response.Success(c, http.StatusOK, PostListResponse{
		Posts: posts,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Pages: query.PageCount(result.Total, result.Limit),
	})
}

// Search handles GET /posts/search?q=.
func (h *PostHandler) Search(c echo.Context) error {
	posts, err := h.postUC.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	if posts == nil {
		posts = []*entity.Post{}
	}

	return response.Success(c, http.StatusOK, posts)
}

// Get handles GET /posts/:id and counts the view.
func (h *PostHandler) Get(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postUC.Get(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, post)
}

// ShareQR handles GET /posts/:id/qr.
func (h *PostHandler) ShareQR(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	png, err := h.postUC.ShareQR(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}

// Create handles POST /posts.
func (h *PostHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postUC.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, post)
}

// Update handles PATCH /posts/:id.
func (h *PostHandler) Update(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postUC.Update(c.Request().Context(), userID, postID, req.toInput()); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c)
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.postUC.Delete(c.Request().Context(), userID, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c)
}

// parsePostID reads the :id path parameter. Ids that cannot exist are reported as a missing post.
func parsePostID(c echo.Context) (uuid.UUID, error) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrPostNotFound
	}

	return postID, nil
}
