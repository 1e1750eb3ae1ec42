package service

import (
	"context"
	"strings"

	"blogly/internal/models"
	"blogly/internal/repository"
)

type TagService struct {
	tagRepo  repository.TagRepository
	postRepo repository.PostRepository
}

type CreateTagInput struct {
	Name    string
	PostIDs []uint
}

type UpdateTagInput struct {
	TagID uint
	Name  string
	// PostIDs, when non-nil, replaces the tag's full post set. Nil leaves
	// associations untouched (the common path: associations change through
	// post edits).
	PostIDs *[]uint
}

func NewTagService(tagRepo repository.TagRepository, postRepo repository.PostRepository) *TagService {
	return &TagService{tagRepo: tagRepo, postRepo: postRepo}
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// ListTags returns all tags. No ordering is guaranteed.
func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// ListTagsByID returns all tags ordered by identifier ascending.
func (s *TagService) ListTagsByID(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.ListByID(ctx)
}

func (s *TagService) CreateTag(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Tag name is required")
	}

	postIDs, err := s.validPostIDs(ctx, in.PostIDs)
	if err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag, postIDs); err != nil {
		return nil, err
	}
	return s.tagRepo.GetByID(ctx, tag.ID)
}

// UpdateTag replaces the tag's name and, when a post set is supplied,
// replaces the full association set with set-difference semantics. Name and
// post set commit together; a failed replacement rolls the rename back.
func (s *TagService) UpdateTag(ctx context.Context, in UpdateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Tag name is required")
	}

	tag, err := s.tagRepo.GetByID(ctx, in.TagID)
	if err != nil {
		return nil, err
	}

	var postIDs *[]uint
	if in.PostIDs != nil {
		valid, err := s.validPostIDs(ctx, *in.PostIDs)
		if err != nil {
			return nil, err
		}
		postIDs = &valid
	}

	tag.Name = name
	if err := s.tagRepo.Update(ctx, tag, postIDs); err != nil {
		return nil, err
	}
	return s.tagRepo.GetByID(ctx, tag.ID)
}

// DeleteTag removes the tag and its associations; tagged posts are otherwise
// unaffected.
func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	return s.tagRepo.Delete(ctx, id)
}

// validPostIDs deduplicates the requested post IDs and verifies each
// references an existing post.
func (s *TagService) validPostIDs(ctx context.Context, ids []uint) ([]uint, error) {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil, nil
	}
	posts, err := s.postRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(posts) != len(unique) {
		return nil, models.NewValidationError("One or more post IDs do not exist")
	}
	return unique, nil
}
