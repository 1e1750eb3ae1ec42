package repository

import (
	"context"
	"errors"

	"blogly/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts, including
// maintenance of the post_tags association.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	Recent(ctx context.Context, limit int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post, tagIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its initial tag associations in one transaction.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return models.NewInternalError(err)
		}
		if len(tagIDs) == 0 {
			return nil
		}
		if err := tx.Model(post).Association("Tags").Append(tagRefs(tagIDs)); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Recent returns the most recently created posts, newest first. ID is the
// secondary order so equal timestamps still sort deterministically.
func (r *postRepository) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update replaces the post's title and content and its full tag set in one
// transaction. Tag replacement is a set difference: associations missing from
// tagIDs are removed and new ones are added.
func (r *postRepository) Update(ctx context.Context, post *models.Post, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{ID: post.ID}).
			Updates(map[string]interface{}{
				"title":   post.Title,
				"content": post.Content,
			}).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return replaceTagSet(tx.Model(&models.Post{ID: post.ID}).Association("Tags"), tagIDs)
	})
}

// Delete removes the post and its join rows. The owning user and any tags are
// untouched.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// tagRefs builds reference-only tag values for association writes.
func tagRefs(ids []uint) []models.Tag {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, models.Tag{ID: id})
	}
	return tags
}

// replaceTagSet applies set-difference replacement on a post's Tags
// association: current tags not in wantIDs are detached, new ones attached.
// Join rows only; the tags themselves are never deleted.
func replaceTagSet(assoc *gorm.Association, wantIDs []uint) error {
	var current []models.Tag
	if err := assoc.Find(&current); err != nil {
		return models.NewInternalError(err)
	}

	want := make(map[uint]bool, len(wantIDs))
	for _, id := range wantIDs {
		want[id] = true
	}
	have := make(map[uint]bool, len(current))
	for _, t := range current {
		have[t.ID] = true
	}

	var toRemove []models.Tag
	for _, t := range current {
		if !want[t.ID] {
			toRemove = append(toRemove, models.Tag{ID: t.ID})
		}
	}
	var toAdd []models.Tag
	for _, id := range wantIDs {
		if !have[id] {
			toAdd = append(toAdd, models.Tag{ID: id})
		}
	}

	if len(toRemove) > 0 {
		if err := assoc.Delete(toRemove); err != nil {
			return models.NewInternalError(err)
		}
	}
	if len(toAdd) > 0 {
		if err := assoc.Append(toAdd); err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}
