// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by register and login: the public user plus a fresh bearer token.
type AuthOutput struct {
	User  *entity.PublicUser
	Token string
}

// UserUsecase defines the interface for account operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	// ResolveCaller turns a bearer token into the id of the calling user.
	ResolveCaller(ctx context.Context, token string) (uuid.UUID, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)
}
