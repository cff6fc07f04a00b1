package impl

import (
	"context"
	"log/slog"
	"time"

	"blog/config"
	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/constants"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/query"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	"blog/internal/usecase"
	"blog/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type postService struct {
	txManager       repository.TransactionManager
	postRepo        repository.PostRepository
	policy          service.PostPolicy
	publisher       service.EventPublisher
	qrcodeService   service.QRCodeService
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	PostRepo      repository.PostRepository
	Policy        service.PostPolicy
	Publisher     service.EventPublisher
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	defaultPageSize, maxPageSize := query.DefaultLimit, 0
	if params.Config != nil && params.Config.Posts != nil {
		if params.Config.Posts.DefaultPageSize > 0 {
			defaultPageSize = params.Config.Posts.DefaultPageSize
		}
		maxPageSize = params.Config.Posts.MaxPageSize
	}

	return &postService{
		txManager:       params.TxManager,
		postRepo:        params.PostRepo,
		policy:          params.Policy,
		publisher:       params.Publisher,
		qrcodeService:   params.QRCodeService,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		logger:          params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns one page of posts, newest first, with the unfiltered total.
func (srv *postService) List(ctx context.Context, input *usecase.ListPostsInput) (*usecase.PostPage, error) {
	limit := input.Limit
	if limit < 1 {
		limit = srv.defaultPageSize
	}
	page := query.Paginate(input.Page, limit, srv.maxPageSize)

	posts, err := srv.postRepo.Find(ctx, query.ListQuery(page))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	total, err := srv.postRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count posts")
	}

	return &usecase.PostPage{
		Posts: posts,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

// Get returns the post after counting this read.
func (srv *postService) Get(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	post, err := srv.postRepo.IncrementViews(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get post")
	}

	return post, nil
}

// Search returns every post whose title or text contains the query.
func (srv *postService) Search(ctx context.Context, rawQuery string) ([]*entity.Post, error) {
	pred, err := query.Search(rawQuery)
	if err != nil {
		return nil, err
	}

	posts, err := srv.postRepo.Find(ctx, query.SearchQuery(pred))
	if err != nil {
		return nil, errors.Wrap(err, "failed to search posts")
	}

	return posts, nil
}

// Create stores a new post written by authorID.
func (srv *postService) Create(ctx context.Context, authorID uuid.UUID, input *usecase.PostInput) (*entity.Post, error) {
	post := &entity.Post{
		Title:    input.Title,
		Text:     input.Text,
		ImageURL: input.ImageURL,
		Tags:     util.NormalizeTags(input.Tags),
		AuthorID: authorID,
	}

	if err := srv.postRepo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to create post")
	}

	srv.log(ctx).Info("Post created", slog.String("postID", post.ID.String()), slog.String("authorID", authorID.String()))
	srv.publish(ctx, constants.EventPostCreated, post.ID, authorID, post.Title)

	return post, nil
}

// Update overwrites a post once the policy allows the caller to modify it.
func (srv *postService) Update(ctx context.Context, callerID, postID uuid.UUID, input *usecase.PostInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.NewPostRepository()
		if err := srv.authorize(ctx, postRepo, callerID, postID); err != nil {
			return err
		}

		return postRepo.Update(ctx, &entity.Post{
			ID:       postID,
			Title:    input.Title,
			Text:     input.Text,
			ImageURL: input.ImageURL,
			Tags:     util.NormalizeTags(input.Tags),
			AuthorID: callerID,
		})
	})
	if err != nil {
		return errors.Wrap(err, "failed to update post")
	}

	srv.publish(ctx, constants.EventPostUpdated, postID, callerID, input.Title)

	return nil
}

// Delete removes a post once the policy allows the caller to modify it.
func (srv *postService) Delete(ctx context.Context, callerID, postID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.NewPostRepository()
		if err := srv.authorize(ctx, postRepo, callerID, postID); err != nil {
			return err
		}

		return postRepo.Delete(ctx, postID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete post")
	}

	srv.log(ctx).Info("Post deleted", slog.String("postID", postID.String()), slog.String("callerID", callerID.String()))
	srv.publish(ctx, constants.EventPostDeleted, postID, callerID, "")

	return nil
}

// ShareQR renders the share code of an existing post.
func (srv *postService) ShareQR(ctx context.Context, postID uuid.UUID) ([]byte, error) {
	if _, err := srv.postRepo.FindByID(ctx, postID); err != nil {
		return nil, errors.Wrap(err, "failed to find post for share code")
	}

	png, err := srv.qrcodeService.GeneratePostQR(postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate share code")
	}

	return png, nil
}

func (srv *postService) authorize(ctx context.Context, postRepo repository.PostRepository, callerID, postID uuid.UUID) error {
	post, err := postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if !srv.policy.CanModify(callerID, post) {
		srv.log(ctx).Warn("Post modification denied", slog.String("postID", postID.String()), slog.String("callerID", callerID.String()))

		return domainerrors.ErrForbidden
	}

	return nil
}

// publish emits a post event. Delivery failures are logged, the request has already succeeded.
func (srv *postService) publish(ctx context.Context, eventType string, postID, actorID uuid.UUID, title string) {
	event := &service.PostEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		PostID:     postID.String(),
		ActorID:    actorID.String(),
		Title:      title,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishPostEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish post event",
			slog.String("type", eventType),
			slog.String("postID", event.PostID),
			slog.Any("error", err),
		)
	}
}
