package service

import (
	"context"
	"strings"

	"blogly/internal/models"
	"blogly/internal/repository"
)

// RecentFeedLimit is how many posts the homepage feed returns.
const RecentFeedLimit = 5

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	tagRepo  repository.TagRepository
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
	TagIDs  []uint
}

type UpdatePostInput struct {
	PostID  uint
	Title   string
	Content string
	TagIDs  []uint
}

type ListPostsInput struct {
	// UserID filters posts to one owning user when non-nil.
	UserID *uint
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	tagRepo repository.TagRepository,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		tagRepo:  tagRepo,
	}
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]models.Post, error) {
	if in.UserID != nil {
		if _, err := s.userRepo.GetByID(ctx, *in.UserID); err != nil {
			return nil, err
		}
		return s.postRepo.ListByUserID(ctx, *in.UserID)
	}
	return s.postRepo.List(ctx)
}

// RecentPosts returns the most recently created posts for the homepage feed,
// newest first.
func (s *PostService) RecentPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.Recent(ctx, RecentFeedLimit)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	tagIDs, err := s.validTagIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post, tagIDs); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost replaces title, content and the full tag set. On validation
// failure nothing is changed.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	tagIDs, err := s.validTagIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(ctx, post, tagIDs); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID)
}

// DeletePost removes the post and its tag associations; the owning user and
// the tags themselves are unaffected.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

// validTagIDs deduplicates the requested tag IDs and verifies each references
// an existing tag, so association writes can never hit a foreign-key error.
func (s *PostService) validTagIDs(ctx context.Context, ids []uint) ([]uint, error) {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, models.NewValidationError("One or more tag IDs do not exist")
	}
	return unique, nil
}

// dedupeIDs removes duplicates while preserving first-seen order.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
