package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog/config"
	"blog/internal/domain/constants"
	"blog/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestPushHandler(cfg *config.Config) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func newPushRequest(t *testing.T, data string) *http.Request {
	t.Helper()

	var msg PubSubMessage
	msg.Message.Data = data
	msg.Message.MessageID = "msg-1"
	msg.Subscription = "projects/local/subscriptions/post-events-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func encodeEvent(t *testing.T, event *service.PostEvent) string {
	t.Helper()

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(raw)
}

func servePush(h *PushHandler, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_HandlePush(t *testing.T) {
	event := &service.PostEvent{
		Type:       constants.EventPostCreated,
		PostID:     "0190c1d2-0000-7000-8000-000000000001",
		ActorID:    "0190c1d2-0000-7000-8000-000000000002",
		OccurredAt: time.Now().UTC(),
	}

	tests := []struct {
		name       string
		data       string
		wantStatus int
	}{
		{name: "post event", data: encodeEvent(t, event), wantStatus: http.StatusOK},
		{name: "unknown type is acknowledged", data: encodeEvent(t, &service.PostEvent{Type: "user.created"}), wantStatus: http.StatusOK},
		{name: "not base64", data: "%%%", wantStatus: http.StatusBadRequest},
		{name: "not json", data: base64.StdEncoding.EncodeToString([]byte("nope")), wantStatus: http.StatusBadRequest},
	}

	h := newTestPushHandler(&config.Config{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := servePush(h, newPushRequest(t, tt.data))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPushHandler_VerifiesGoogleTokens(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	cfg.Env.Env = constants.EnvProduction

	h := newTestPushHandler(cfg)
	require.True(t, h.verifyPushAuth)

	var gotAudience string
	h.WithTokenValidator(func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		gotAudience = audience
		if token != "good" {
			return nil, errors.New("bad signature")
		}

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	})

	data := encodeEvent(t, &service.PostEvent{Type: constants.EventPostDeleted, PostID: "p"})

	rec := servePush(h, newPushRequest(t, data))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := newPushRequest(t, data)
	req.Header.Set("Authorization", "Bearer bad")
	rec = servePush(h, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = newPushRequest(t, data)
	req.Header.Set("Authorization", "Bearer good")
	rec = servePush(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com/push", gotAudience)
}

func TestPushHandler_SkipsVerificationLocally(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	cfg.Env.Env = constants.EnvLocal

	assert.False(t, newTestPushHandler(cfg).verifyPushAuth)
}

func TestPushHandler_ExtractRequestID(t *testing.T) {
	h := newTestPushHandler(&config.Config{})

	var msg PubSubMessage
	msg.Message.Attributes = map[string]string{"request_id": "from-attrs"}
	assert.Equal(t, "from-attrs", h.extractRequestID(context.Background(), &msg, &service.PostEvent{RequestID: "from-event"}))

	assert.Equal(t, "from-event", h.extractRequestID(context.Background(), &PubSubMessage{}, &service.PostEvent{RequestID: "from-event"}))

	assert.NotEmpty(t, h.extractRequestID(context.Background(), &PubSubMessage{}, &service.PostEvent{}))
}
