package server

import (
	"blogly/internal/middleware"
	"blogly/internal/models"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postRequest is the decoded body for post create/update. The tag set always
// replaces the stored one in full.
type postRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
	TagIDs  []uint `json:"tag_ids" form:"tag_ids"`
}

// RecentFeed handles GET / and returns the five most recent posts.
func (s *Server) RecentFeed(c *fiber.Ctx) error {
	posts, err := s.postService.RecentPosts(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{UserID: &userID})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// CreateUserPost handles POST /api/users/:id/posts
func (s *Server) CreateUserPost(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		TagIDs:  req.TagIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.EntityOps.WithLabelValues("post", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
		TagIDs:  req.TagIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.EntityOps.WithLabelValues("post", "update").Inc()
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.EntityOps.WithLabelValues("post", "delete").Inc()
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
