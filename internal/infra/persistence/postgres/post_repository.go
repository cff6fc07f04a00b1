package postgres

import (
	"context"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/query"
	"blog/internal/domain/repository"
	"blog/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	authorAssociation = "User"
	searchCondition   = `LOWER(title) LIKE ? ESCAPE '\' OR LOWER(text) LIKE ? ESCAPE '\'`
)

var postOrders = map[query.SortOrder]string{
	query.NewestFirst: "created_at DESC, id DESC",
	query.OldestFirst: "created_at ASC, id ASC",
}

// postRepository implements the repository.PostRepository interface using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{
		db: db,
	}
}

// Find runs q against the posts table with the author joined in.
func (repo *postRepository) Find(ctx context.Context, q query.PostQuery) ([]*entity.Post, error) {
	tx := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Preload(authorAssociation)

	if q.Search != nil {
		pattern := q.Search.LikePattern()
		tx = tx.Where(searchCondition, pattern, pattern)
	}

	order, ok := postOrders[q.Order]
	if !ok {
		order = postOrders[query.NewestFirst]
	}
	tx = tx.Order(order)

	if q.Pagination != nil {
		tx = tx.Offset(q.Pagination.Skip).Limit(q.Pagination.Limit)
	}

	var postModels []*model.PostModel
	if err := tx.Find(&postModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find posts")
	}

	posts := make([]*entity.Post, 0, len(postModels))
	for _, postM := range postModels {
		posts = append(posts, toPostDomain(postM))
	}

	return posts, nil
}

// Count returns the number of stored posts.
func (repo *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.PostModel{}).Count(&total).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count posts")
	}

	return total, nil
}

// FindByID retrieves a post with its author.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	return findPost(ctx, repo.db, id)
}

// IncrementViews bumps views_count in the database and reads the post back in the same transaction.
func (repo *postRepository) IncrementViews(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post *entity.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PostModel{}).
			Where("id = ?", id).
			UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment post views")
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPostNotFound
		}

		found, err := findPost(ctx, tx, id)
		if err != nil {
			return err
		}
		post = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// Create inserts the post and reloads it so the author is populated.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate post id")
		}
		post.ID = id
	}

	postM := fromPostDomain(post)
	if err := repo.db.WithContext(ctx).Omit(authorAssociation).Create(postM).Error; err != nil {
		return classifyPostWriteError(err, "failed to create post")
	}

	created, err := findPost(ctx, repo.db, post.ID)
	if err != nil {
		return err
	}
	*post = *created

	return nil
}

// Update overwrites the editable fields of an existing post.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":     post.Title,
			"text":      post.Text,
			"image_url": post.ImageURL,
			"tags":      toTagColumn(post.Tags),
			"user_id":   post.AuthorID,
		})

	if result.Error != nil {
		return classifyPostWriteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}

	return nil
}

// Delete removes a post by its ID.
func (repo *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PostModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}

	return nil
}

func findPost(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel
	if err := db.WithContext(ctx).
		Preload(authorAssociation).
		Where("id = ?", id).
		First(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post")
	}

	return toPostDomain(&postM), nil
}

func classifyPostWriteError(err error, details string) error {
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrUserNotFound.WrapMessage("post author does not exist")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage("missing required post information")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---

func toTagColumn(tags []string) datatypes.JSONSlice[string] {
	if tags == nil {
		return datatypes.JSONSlice[string]{}
	}

	return datatypes.JSONSlice[string](tags)
}

func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	tags := make([]string, len(data.Tags))
	copy(tags, data.Tags)

	return &entity.Post{
		ID:         data.ID,
		Title:      data.Title,
		Text:       data.Text,
		ImageURL:   data.ImageURL,
		Tags:       tags,
		ViewsCount: data.ViewsCount,
		AuthorID:   data.UserID,
		Author:     toUserDomain(data.User).Public(),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:         data.ID,
		Title:      data.Title,
		Text:       data.Text,
		ImageURL:   data.ImageURL,
		Tags:       toTagColumn(data.Tags),
		ViewsCount: data.ViewsCount,
		UserID:     data.AuthorID,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
