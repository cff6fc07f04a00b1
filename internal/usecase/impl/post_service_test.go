package impl

import (
	"context"
	"testing"

	"blog/internal/domain/constants"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/query"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	mockRepo "blog/internal/mocks/repository"
	mockSvc "blog/internal/mocks/service"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// postServiceFixtures holds all test dependencies for post service tests.
type postServiceFixtures struct {
	service     usecase.PostUsecase
	txManager   *mockRepo.MockTransactionManager
	repoFactory *mockRepo.MockRepositoryFactory
	postRepo    *mockRepo.MockPostRepository
	txPostRepo  *mockRepo.MockPostRepository
	publisher   *mockSvc.MockEventPublisher
	qrcode      *mockSvc.MockQRCodeService
}

func createTestPostService(t *testing.T, ownerOnly bool) postServiceFixtures {
	cfg := newTestConfig()
	cfg.Posts.OwnerOnly = ownerOnly

	fixtures := postServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		repoFactory: mockRepo.NewMockRepositoryFactory(t),
		postRepo:    mockRepo.NewMockPostRepository(t),
		txPostRepo:  mockRepo.NewMockPostRepository(t),
		publisher:   mockSvc.NewMockEventPublisher(t),
		qrcode:      mockSvc.NewMockQRCodeService(t),
	}

	fixtures.service = NewPostService(PostServiceParams{
		TxManager:     fixtures.txManager,
		PostRepo:      fixtures.postRepo,
		Policy:        service.NewPostPolicy(cfg.Posts.OwnerOnly),
		Publisher:     fixtures.publisher,
		QRCodeService: fixtures.qrcode,
		Config:        cfg,
		Logger:        newDiscardLogger(),
	})

	return fixtures
}

// expectTransaction runs the callback against the transaction-bound post repository.
func (f postServiceFixtures) expectTransaction(ctx context.Context) {
	f.txManager.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.repoFactory)
		})
	f.repoFactory.EXPECT().NewPostRepository().Return(f.txPostRepo)
}

func (f postServiceFixtures) expectEvent(eventType string, postID uuid.UUID) {
	f.publisher.EXPECT().
		PublishPostEvent(mock.Anything, mock.MatchedBy(func(e *service.PostEvent) bool {
			return e.Type == eventType && e.PostID == postID.String()
		})).
		Return(nil)
}

func TestPostService_List(t *testing.T) {
	fx := createTestPostService(t, false)
	ctx := context.Background()
	posts := []*entity.Post{{ID: uuid.New()}, {ID: uuid.New()}}

	fx.postRepo.EXPECT().
		Find(ctx, query.ListQuery(query.Pagination{Page: 2, Limit: 5, Skip: 5})).
		Return(posts, nil)
	fx.postRepo.EXPECT().Count(ctx).Return(int64(12), nil)

	page, err := fx.service.List(ctx, &usecase.ListPostsInput{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, posts, page.Posts)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Limit)
}

func TestPostService_List_DefaultsAndClamp(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.ListPostsInput
		want  query.Pagination
	}{
		{name: "defaults", input: usecase.ListPostsInput{}, want: query.Pagination{Page: 1, Limit: 10, Skip: 0}},
		{name: "clamped", input: usecase.ListPostsInput{Page: 1, Limit: 1000}, want: query.Pagination{Page: 1, Limit: 100, Skip: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPostService(t, false)
			ctx := context.Background()

			fx.postRepo.EXPECT().Find(ctx, query.ListQuery(tt.want)).Return([]*entity.Post{}, nil)
			fx.postRepo.EXPECT().Count(ctx).Return(int64(0), nil)

			page, err := fx.service.List(ctx, &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Limit, page.Limit)
			assert.Empty(t, page.Posts)
		})
	}
}

func TestPostService_List_PersistenceError(t *testing.T) {
	fx := createTestPostService(t, false)
	ctx := context.Background()

	fx.postRepo.EXPECT().Find(ctx, mock.Anything).
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("down"), "failed to find posts"))

	_, err := fx.service.List(ctx, &usecase.ListPostsInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrPersistence))
}

func TestPostService_Get(t *testing.T) {
	fx := createTestPostService(t, false)
	ctx := context.Background()
	post := &entity.Post{ID: uuid.New(), ViewsCount: 4}

	fx.postRepo.EXPECT().IncrementViews(ctx, post.ID).Return(post, nil)

	got, err := fx.service.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ViewsCount)

	missing := uuid.New()
	fx.postRepo.EXPECT().IncrementViews(ctx, missing).Return(nil, domainerrors.ErrPostNotFound)

	_, err = fx.service.Get(ctx, missing)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestPostService_Search(t *testing.T) {
	fx := createTestPostService(t, false)
	ctx := context.Background()

	fx.postRepo.EXPECT().
		Find(ctx, mock.MatchedBy(func(q query.PostQuery) bool {
			return q.Search != nil && q.Search.Term == "golang" && q.Pagination == nil
		})).
		Return([]*entity.Post{}, nil)

	posts, err := fx.service.Search(ctx, " golang ")
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = fx.service.Search(ctx, "  ")
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyQuery))
}

func TestPostService_Create(t *testing.T) {
	fx := createTestPostService(t, false)
	ctx := context.Background()
	authorID := uuid.New()
	postID := uuid.New()

	fx.postRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(p *entity.Post) bool {
			return p.AuthorID == authorID && p.Title == "Hello" && len(p.Tags) == 2
		})).
		Run(func(_ context.Context, p *entity.Post) { p.ID = postID }).
		Return(nil)
	fx.expectEvent(constants.EventPostCreated, postID)

	post, err := fx.service.Create(ctx, authorID, &usecase.PostInput{
		Title: "Hello",
		Text:  "World",
		Tags:  []string{" go", "", "blog"},
	})
	require.NoError(t, err)
	assert.Equal(t, postID, post.ID)
	assert.Equal(t, []string{"go", "blog"}, post.Tags)
}

func TestPostService_Create_PublishFailureIsNotFatal(t *testing.T) {
	fx := createTestPostService(t, false)
	ctx := context.Background()

	fx.postRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Post")).Return(nil)
	fx.publisher.EXPECT().PublishPostEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	_, err := fx.service.Create(ctx, uuid.New(), &usecase.PostInput{Title: "t", Text: "x"})
	assert.NoError(t, err)
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()
	author := uuid.New()
	stranger := uuid.New()
	postID := uuid.New()
	existing := &entity.Post{ID: postID, AuthorID: author}
	input := &usecase.PostInput{Title: "New", Text: "Body", Tags: []string{"go"}}

	t.Run("any caller may edit by default", func(t *testing.T) {
		fx := createTestPostService(t, false)
		fx.expectTransaction(ctx)
		fx.txPostRepo.EXPECT().FindByID(ctx, postID).Return(existing, nil)
		fx.txPostRepo.EXPECT().
			Update(ctx, mock.MatchedBy(func(p *entity.Post) bool {
				return p.ID == postID && p.AuthorID == stranger && p.Title == "New"
			})).
			Return(nil)
		fx.expectEvent(constants.EventPostUpdated, postID)

		require.NoError(t, fx.service.Update(ctx, stranger, postID, input))
	})

	t.Run("owner only rejects stranger", func(t *testing.T) {
		fx := createTestPostService(t, true)
		fx.expectTransaction(ctx)
		fx.txPostRepo.EXPECT().FindByID(ctx, postID).Return(existing, nil)

		err := fx.service.Update(ctx, stranger, postID, input)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("missing post", func(t *testing.T) {
		fx := createTestPostService(t, false)
		fx.expectTransaction(ctx)
		fx.txPostRepo.EXPECT().FindByID(ctx, postID).Return(nil, domainerrors.ErrPostNotFound)

		err := fx.service.Update(ctx, author, postID, input)
		assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()
	author := uuid.New()
	postID := uuid.New()
	existing := &entity.Post{ID: postID, AuthorID: author}

	t.Run("owner deletes", func(t *testing.T) {
		fx := createTestPostService(t, true)
		fx.expectTransaction(ctx)
		fx.txPostRepo.EXPECT().FindByID(ctx, postID).Return(existing, nil)
		fx.txPostRepo.EXPECT().Delete(ctx, postID).Return(nil)
		fx.expectEvent(constants.EventPostDeleted, postID)

		require.NoError(t, fx.service.Delete(ctx, author, postID))
	})

	t.Run("missing post", func(t *testing.T) {
		fx := createTestPostService(t, false)
		fx.expectTransaction(ctx)
		fx.txPostRepo.EXPECT().FindByID(ctx, postID).Return(nil, domainerrors.ErrPostNotFound)

		err := fx.service.Delete(ctx, author, postID)
		assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
	})
}

func TestPostService_ShareQR(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	fx := createTestPostService(t, false)
	fx.postRepo.EXPECT().FindByID(ctx, postID).Return(&entity.Post{ID: postID}, nil)
	fx.qrcode.EXPECT().GeneratePostQR(postID).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := fx.service.ShareQR(ctx, postID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	fx = createTestPostService(t, false)
	fx.postRepo.EXPECT().FindByID(ctx, postID).Return(nil, domainerrors.ErrPostNotFound)

	_, err = fx.service.ShareQR(ctx, postID)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}
