package usecase

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// ListPostsInput carries the raw page window; zero values fall back to defaults.
type ListPostsInput struct {
	Page  int
	Limit int
}

// PostPage is one page of the newest-first listing. Total counts every post.
type PostPage struct {
	Posts []*entity.Post
	Total int64
	Page  int
	Limit int
}

// PostInput holds the author-editable fields of a post.
type PostInput struct {
	Title    string
	Text     string
	ImageURL string
	Tags     []string
}

// PostUsecase defines the interface for reading and authoring posts.
type PostUsecase interface {
	List(ctx context.Context, input *ListPostsInput) (*PostPage, error)
	// Get returns a single post and counts the read as a view.
	Get(ctx context.Context, postID uuid.UUID) (*entity.Post, error)
	Search(ctx context.Context, rawQuery string) ([]*entity.Post, error)
	Create(ctx context.Context, authorID uuid.UUID, input *PostInput) (*entity.Post, error)
	// Update overwrites the post and makes the caller its author.
	Update(ctx context.Context, callerID, postID uuid.UUID, input *PostInput) error
	Delete(ctx context.Context, callerID, postID uuid.UUID) error
	// ShareQR renders a PNG QR code linking to the post.
	ShareQR(ctx context.Context, postID uuid.UUID) ([]byte, error)
}
