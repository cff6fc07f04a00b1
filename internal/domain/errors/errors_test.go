package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	derived := ErrUserNotFound.WithStatus(http.StatusMethodNotAllowed)

	assert.True(t, stderrors.Is(derived, ErrUserNotFound))
	assert.Equal(t, http.StatusMethodNotAllowed, derived.HTTPCode())
	assert.Equal(t, http.StatusNotFound, ErrUserNotFound.HTTPCode())
	assert.False(t, stderrors.Is(derived, ErrPostNotFound))
}

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrPostNotFound.WrapMessage("update post")

	assert.True(t, stderrors.Is(err, ErrPostNotFound))
	assert.Contains(t, err.Error(), "update post")

	var appErr AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "POST_NOT_FOUND", appErr.ErrorCode())
}

func TestBaseError_WithDetails(t *testing.T) {
	err := ErrValidationFailed.WithDetails("title is required")

	assert.Equal(t, "title is required", err.Details())
	assert.Equal(t, ErrValidationFailed.Message(), err.Message())
	assert.True(t, stderrors.Is(err, ErrValidationFailed))
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := pkgerrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create post")

	assert.True(t, stderrors.Is(err, ErrPersistence))
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "PERSISTENCE_ERROR", err.ErrorCode())
	assert.Equal(t, "failed to create post", err.Details())
	assert.Contains(t, err.Error(), "connection reset")
}
