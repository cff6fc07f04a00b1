package service

import (
	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// PostPolicy decides whether a caller may modify a post.
type PostPolicy interface {
	CanModify(callerID uuid.UUID, post *entity.Post) bool
}

// NewPostPolicy returns the policy for the configured mode. With ownerOnly unset
// any authenticated caller may edit or delete any post.
func NewPostPolicy(ownerOnly bool) PostPolicy {
	if ownerOnly {
		return ownerOnlyPolicy{}
	}

	return anyCallerPolicy{}
}

type anyCallerPolicy struct{}

func (anyCallerPolicy) CanModify(callerID uuid.UUID, _ *entity.Post) bool {
	return callerID != uuid.Nil
}

type ownerOnlyPolicy struct{}

func (ownerOnlyPolicy) CanModify(callerID uuid.UUID, post *entity.Post) bool {
	return callerID != uuid.Nil && post.IsAuthoredBy(callerID)
}
