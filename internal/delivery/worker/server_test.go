package worker_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"blog/config"
	"blog/internal/delivery/worker"
	"blog/internal/delivery/worker/handler"
	"blog/internal/domain/constants"
	"blog/internal/domain/service"
	"blog/internal/infra/pubsub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_ReceivesEventsFromLocalPublisher(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := worker.NewEcho(cfg, logger, handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger}))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	publisher := pubsub.NewLocalHTTPPublisher(srv.URL+"/push", logger)
	t.Cleanup(func() { require.NoError(t, publisher.Close()) })

	err := publisher.PublishPostEvent(context.Background(), &service.PostEvent{
		RequestID:  "req-1",
		Type:       constants.EventPostUpdated,
		PostID:     "0190c1d2-0000-7000-8000-000000000001",
		ActorID:    "0190c1d2-0000-7000-8000-000000000002",
		Title:      "Hello",
		OccurredAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
}

func TestWorker_RejectsGarbage(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := worker.NewEcho(cfg, logger, handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger}))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Post(srv.URL+"/push", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}
