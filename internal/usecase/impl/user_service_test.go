package impl

import (
	"context"
	"testing"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	mockRepo "blog/internal/mocks/repository"
	mockSvc "blog/internal/mocks/service"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.hasher.EXPECT().Hash("secret123").Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username == "alice" && u.PasswordHash == "hashed"
		})).
		Run(func(_ context.Context, u *entity.User) { u.ID = userID }).
		Return(nil)
	fx.tokenService.EXPECT().Issue(userID).Return("token", nil)

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "token", out.Token)
	assert.Equal(t, userID, out.User.ID)
	assert.Equal(t, "alice", out.User.Username)
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret123").Return("hashed", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(domainerrors.ErrUsernameTaken)

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "secret123"})
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestUserService_Register_HashFailure(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret123").Return("", domainerrors.ErrPasswordHashFailed)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "secret123"})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestUserService_Login(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "hashed"}

	t.Run("success", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
		fx.hasher.EXPECT().Check("secret123", "hashed").Return(true)
		fx.tokenService.EXPECT().Issue(user.ID).Return("token", nil)

		out, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "token", out.Token)
		assert.Equal(t, user.Public(), out.User)
	})

	t.Run("unknown user", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, domainerrors.ErrUserNotFound)

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "secret123"})
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
		fx.hasher.EXPECT().Check("wrong", "hashed").Return(false)

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})
}

func TestUserService_ResolveCaller(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.tokenService.EXPECT().Verify("good").Return(userID, nil)

		got, err := fx.service.ResolveCaller(ctx, "good")
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("expired token", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.tokenService.EXPECT().Verify("old").Return(uuid.Nil, domainerrors.ErrTokenExpired)

		_, err := fx.service.ResolveCaller(ctx, "old")
		assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
	})

	t.Run("missing token", func(t *testing.T) {
		fx := createTestUserService(t)

		_, err := fx.service.ResolveCaller(ctx, "")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	})
}

func TestUserService_Me(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "hashed"}

	fx := createTestUserService(t)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	got, err := fx.service.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	fx = createTestUserService(t)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(nil, domainerrors.ErrUserNotFound)

	_, err = fx.service.Me(ctx, user.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
