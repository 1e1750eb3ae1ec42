package repository

import (
	"context"
	"errors"

	"blogly/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag, postIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	ListByID(ctx context.Context) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag, postIDs *[]uint) error
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create inserts the tag and its initial post associations in one transaction.
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag, postIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tag).Error; err != nil {
			return models.NewInternalError(err)
		}
		if len(postIDs) == 0 {
			return nil
		}
		if err := tx.Model(tag).Association("Posts").Append(postRefs(postIDs)); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).
		Preload("Posts").
		First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// ListByID returns all tags ordered by identifier ascending.
func (r *tagRepository) ListByID(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// Update replaces the tag's name and, when postIDs is non-nil, its full post
// set, all in one transaction. A nil postIDs leaves the associations alone.
// Post replacement is the same set difference done for a post's tags.
func (r *tagRepository) Update(ctx context.Context, tag *models.Tag, postIDs *[]uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Tag{ID: tag.ID}).
			Update("name", tag.Name).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		if postIDs == nil {
			return nil
		}
		return replacePostSet(tx.Model(&models.Tag{ID: tag.ID}).Association("Posts"), *postIDs)
	})
}

// replacePostSet applies set-difference replacement on a tag's Posts
// association: current posts not in wantIDs are detached, new ones attached.
// Join rows only; the posts themselves are never deleted.
func replacePostSet(assoc *gorm.Association, wantIDs []uint) error {
	var current []models.Post
	if err := assoc.Find(&current); err != nil {
		return models.NewInternalError(err)
	}

	want := make(map[uint]bool, len(wantIDs))
	for _, id := range wantIDs {
		want[id] = true
	}
	have := make(map[uint]bool, len(current))
	for _, p := range current {
		have[p.ID] = true
	}

	var toRemove []models.Post
	for _, p := range current {
		if !want[p.ID] {
			toRemove = append(toRemove, models.Post{ID: p.ID})
		}
	}
	var toAdd []models.Post
	for _, id := range wantIDs {
		if !have[id] {
			toAdd = append(toAdd, models.Post{ID: id})
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

// Delete removes the tag and its join rows. Tagged posts are unaffected
// beyond losing this one association.
func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tag", id)
			}
			return models.NewInternalError(err)
		}
		if err := tx.Model(&tag).Association("Posts").Clear(); err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Tag{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// postRefs builds reference-only post values for association writes.
func postRefs(ids []uint) []models.Post {
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, models.Post{ID: id})
	}
	return posts
}
