package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "blog/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "wrapped app error",
			err:         errors.Wrap(domainerrors.ErrPostNotFound, "failed to get post"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "POST_NOT_FOUND",
			wantMessage: "Article not found",
		},
		{
			name:        "status override",
			err:         domainerrors.ErrUserNotFound.WithStatus(http.StatusMethodNotAllowed),
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "USER_NOT_FOUND",
			wantMessage: "User Not Found",
		},
		{
			name:        "persistence failure",
			err:         domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to count posts"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "PERSISTENCE_ERROR",
			wantMessage: "Database operation failed",
		},
		{
			name:        "echo error",
			err:         echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"),
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantCode:    "HTTP_ERROR",
			wantMessage: "Request Entity Too Large",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error, please try again later",
		},
	}

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMessage, body["message"])
			if tt.wantStatus >= http.StatusInternalServerError {
				assert.NotContains(t, body, "details")
			}
		})
	}
}

func TestErrorMiddleware_SkipsCommittedResponse(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	m.HandleHTTPError(domainerrors.ErrInternalError, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
