package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog/config"
	"blog/internal/delivery/api"
	apimiddleware "blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/router"
	"blog/internal/delivery/api/router/handler"
	mockUC "blog/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// apiFixtures wires the real router and middleware stack around mocked usecases.
type apiFixtures struct {
	e        *echo.Echo
	cfg      *config.Config
	userUC   *mockUC.MockUserUsecase
	postUC   *mockUC.MockPostUsecase
	uploadUC *mockUC.MockUploadUsecase
}

func newTestAPI(t *testing.T, configure ...func(*config.Config)) apiFixtures {
	t.Helper()

	cfg := &config.Config{}
	for _, fn := range configure {
		fn(cfg)
	}
	cfg.ApplyDefaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fixtures := apiFixtures{
		cfg:      cfg,
		userUC:   mockUC.NewMockUserUsecase(t),
		postUC:   mockUC.NewMockPostUsecase(t),
		uploadUC: mockUC.NewMockUploadUsecase(t),
	}

	fixtures.e = api.NewEcho(cfg, logger, router.RouterParams{
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{UserUC: fixtures.userUC, Logger: logger}),
		PostHandler:    handler.NewPostHandler(handler.PostHandlerParams{PostUC: fixtures.postUC, Logger: logger}),
		UploadHandler:  handler.NewUploadHandler(handler.UploadHandlerParams{UploadUC: fixtures.uploadUC, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(fixtures.userUC),
		Config:         cfg,
	})

	return fixtures
}

// signIn makes testToken resolve to a fresh user id.
func (f apiFixtures) signIn() uuid.UUID {
	userID := uuid.New()
	f.userUC.EXPECT().ResolveCaller(mock.Anything, testToken).Return(userID, nil)

	return userID
}

func (f apiFixtures) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func withBearer(req *http.Request) *http.Request {
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+testToken)

	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	return decodeBody[map[string]any](t, rec)
}
