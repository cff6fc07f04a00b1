package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	// Issue returns a token naming userID as its subject, valid for TTL.
	Issue(userID uuid.UUID) (string, error)

	// Verify checks the signature and expiry of a token and returns its subject.
	// Failures are domainerrors.ErrTokenExpired or domainerrors.ErrInvalidToken.
	Verify(token string) (uuid.UUID, error)

	// TTL returns how long issued tokens stay valid.
	TTL() time.Duration
}
