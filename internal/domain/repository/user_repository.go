// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the standard operations for user persistence.
// Users are created on registration and never updated or deleted.
type UserRepository interface {
	// Create persists a new user. A username collision is reported as
	// domainerrors.ErrUsernameTaken, detected by the unique constraint on insert.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	// Returns domainerrors.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	// Returns domainerrors.ErrUserNotFound when no row matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
