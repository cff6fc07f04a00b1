package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog article written by a single user.
type Post struct {
	ID         uuid.UUID   `json:"_id"`        // The Global Unique Identifier (GUID) for the post.
	Title      string      `json:"title"`      // Required headline.
	Text       string      `json:"text"`       // Required body.
	ImageURL   string      `json:"imageUrl"`   // Optional path or URL of the cover image.
	Tags       []string    `json:"tags"`       // Ordered tags, empty when none were given.
	ViewsCount int64       `json:"viewsCount"` // Incremented once per single-post read.
	AuthorID   uuid.UUID   `json:"-"`          // The user who wrote (or last overwrote) the post.
	Author     *PublicUser `json:"user"`       // Populated by queries that join the author, nil otherwise.
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// IsAuthoredBy reports whether userID is the post's author.
func (p *Post) IsAuthoredBy(userID uuid.UUID) bool {
	return p != nil && p.AuthorID == userID
}
