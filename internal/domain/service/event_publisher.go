package service

import (
	"context"
	"time"
)

// PostEvent describes a change to a post, published for downstream consumers.
type PostEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	PostID     string    `json:"post_id"`
	ActorID    string    `json:"actor_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishPostEvent publishes a post lifecycle event
	PublishPostEvent(ctx context.Context, event *PostEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
