package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PublicDropsPasswordHash(t *testing.T) {
	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	public := user.Public()
	require.NotNil(t, public)
	assert.Equal(t, user.ID, public.ID)
	assert.Equal(t, "alice", public.Username)

	raw, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"_id"`)
}

func TestUser_PublicOnNil(t *testing.T) {
	var user *User
	assert.Nil(t, user.Public())
}

func TestPost_IsAuthoredBy(t *testing.T) {
	author := uuid.New()
	post := &Post{AuthorID: author}

	assert.True(t, post.IsAuthoredBy(author))
	assert.False(t, post.IsAuthoredBy(uuid.New()))

	var missing *Post
	assert.False(t, missing.IsAuthoredBy(author))
}
