// Package service implements the application's business rules on top of the
// repository layer. All input validation happens here, before any store
// mutation is attempted.
package service

import (
	"context"
	"strings"

	"blogly/internal/models"
	"blogly/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	FirstName string
	LastName  string
	ImgURL    string
}

type UpdateUserInput struct {
	UserID    uint
	FirstName string
	LastName  string
	ImgURL    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns all users ordered by last name descending, first name
// ascending.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, models.NewValidationError("First and last name are required")
	}

	imgURL := strings.TrimSpace(in.ImgURL)
	if imgURL == "" {
		imgURL = models.DefaultImgURL
	}

	user := &models.User{
		FirstName: first,
		LastName:  last,
		ImgURL:    imgURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser replaces all editable fields. Validation failure leaves the
// stored user untouched.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, models.NewValidationError("First and last name are required")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.FirstName = first
	user.LastName = last
	user.ImgURL = strings.TrimSpace(in.ImgURL)
	if user.ImgURL == "" {
		user.ImgURL = models.DefaultImgURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and, transitively, all posts the user owns
// along with their tag associations.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
