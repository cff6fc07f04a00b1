// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strconv"

	"blog/config"
	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

// multipartOverhead is the room left for multipart headers above the file size limit.
const multipartOverhead = 1 << 20

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	PostHandler    *handler.PostHandler
	UploadHandler  *handler.UploadHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	postHandler    *handler.PostHandler
	uploadHandler  *handler.UploadHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		postHandler:    params.PostHandler,
		uploadHandler:  params.UploadHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		limiter := middleware.NewAuthRateLimiter(r.config)
		authGroup.POST("/register", r.userHandler.Register, limiter)
		authGroup.POST("/login", r.userHandler.Login, limiter)
		authGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}

	postsGroup := e.Group("/posts")
	{
		postsGroup.GET("", r.postHandler.List)
		// Registered before /:id so "search" is never taken for an id.
		postsGroup.GET("/search", r.postHandler.Search)
		postsGroup.GET("/:id", r.postHandler.Get)
		postsGroup.GET("/:id/qr", r.postHandler.ShareQR)

		postsGroup.POST("", r.postHandler.Create, r.authMiddleware.Authenticate)
		postsGroup.PATCH("/:id", r.postHandler.Update, r.authMiddleware.Authenticate)
		postsGroup.DELETE("/:id", r.postHandler.Delete, r.authMiddleware.Authenticate)
	}

	e.POST("/upload", r.uploadHandler.Upload,
		r.authMiddleware.Authenticate,
		echomiddleware.BodyLimit(r.uploadBodyLimit()),
	)
	e.GET(r.uploadsPath()+"/:name", r.uploadHandler.Serve)
}

// IsUploadRoute reports whether path is the upload endpoint, which carries its own body limit.
func IsUploadRoute(path string) bool {
	return path == "/upload"
}

func (r *router) uploadBodyLimit() string {
	maxSize := int64(0)
	if r.config.Storage != nil {
		maxSize = r.config.Storage.MaxUploadSize
	}
	if maxSize <= 0 {
		maxSize = config.DefaultMaxUploadSize
	}

	return strconv.FormatInt(maxSize+multipartOverhead, 10) + "B"
}

func (r *router) uploadsPath() string {
	if r.config.Storage != nil && r.config.Storage.PublicPrefix != "" {
		return r.config.Storage.PublicPrefix
	}

	return config.DefaultPublicPrefix
}
