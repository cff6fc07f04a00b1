package repository

import (
	"context"

	"blog/internal/domain/entity"
	"blog/internal/domain/query"

	"github.com/google/uuid"
)

// PostRepository defines persistence for posts. Every post it returns has its Author populated.
type PostRepository interface {
	// Find returns the posts matching q in q's order, restricted to q's page window.
	Find(ctx context.Context, q query.PostQuery) ([]*entity.Post, error)

	// Count returns the total number of posts, ignoring any page window.
	Count(ctx context.Context) (int64, error)

	// FindByID retrieves a post without touching its view counter.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// IncrementViews atomically adds one to the post's view counter and returns
	// the post as it is after the increment.
	IncrementViews(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// Create persists a new post. The author must exist.
	Create(ctx context.Context, post *entity.Post) error

	// Update overwrites title, text, image, tags and author of an existing post.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes a post.
	Delete(ctx context.Context, id uuid.UUID) error
}
