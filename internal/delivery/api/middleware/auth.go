package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "blog/internal/delivery/context"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUserID is the echo.Context key holding the authenticated user id.
	ContextKeyUserID = "userID"

	bearerPrefix = "Bearer "
)

// AuthMiddleware resolves the bearer token of a request into the calling user.
type AuthMiddleware struct {
	userUC usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(userUC usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{userUC: userUC}
}

// Authenticate rejects the request unless it carries a valid, unexpired bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrInvalidToken.WithDetails("authorization header is missing")
		}

		if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return domainerrors.ErrInvalidToken.WithDetails("authorization must be a Bearer token")
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])

		ctx := c.Request().Context()
		userID, err := m.userUC.ResolveCaller(ctx, token)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUserID, userID)

		ctx = deliverycontext.WithUserID(ctx, userID)
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", userID.String())))
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// GetUserID returns the caller stored by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return userID, ok && userID != uuid.Nil
}
