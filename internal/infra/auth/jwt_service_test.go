package auth

import (
	"strings"
	"testing"
	"time"

	"blog/config"
	domainerrors "blog/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T, clock *time.Time) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	s, ok := svc.(*jwtService)
	require.True(t, ok)
	s.now = func() time.Time { return *clock }

	return s
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, &now)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, 30*24*time.Hour, svc.TTL())
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	svc := newTestJWTService(t, &clock)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)

	clock = issuedAt.Add(29 * 24 * time.Hour)
	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	clock = issuedAt.Add(31 * 24 * time.Hour)
	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_InvalidTokens(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, &now)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "another_secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)
	forged, err := other.Issue(uuid.New())
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: uuid.NewString(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "clearly-not-a-jwt-token-format",
		"empty":          "",
		"wrong secret":   forged,
		"tampered":       token[:len(token)-2] + strings.Repeat("A", 2),
		"alg none":       noneToken,
		"subject not id": badSubject,
		"missing expiry": noExpiry,
	}

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			id, err := svc.Verify(tok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
			assert.Equal(t, uuid.Nil, id)
		})
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestNewJWTService_ConfiguredTTL(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())
}
