package server

import (
	"blogly/internal/middleware"
	"blogly/internal/models"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// tagRequest is the decoded body for tag create/update. PostIDs is a pointer
// so updates can distinguish "leave associations alone" (absent) from
// "replace with this set" (present, possibly empty).
type tagRequest struct {
	Name    string  `json:"name" form:"name"`
	PostIDs *[]uint `json:"post_ids" form:"post_ids"`
}

// ListTags handles GET /api/tags. With ?sort=id the result is ordered by
// identifier ascending.
func (s *Server) ListTags(c *fiber.Ctx) error {
	var (
		tags []models.Tag
		err  error
	)
	if c.Query("sort") == "id" {
		tags, err = s.tagService.ListTagsByID(c.Context())
	} else {
		tags, err = s.tagService.ListTags(c.Context())
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagService.GetTag(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tag)
}

// CreateTag handles POST /api/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var postIDs []uint
	if req.PostIDs != nil {
		postIDs = *req.PostIDs
	}

	tag, err := s.tagService.CreateTag(c.Context(), service.CreateTagInput{
		Name:    req.Name,
		PostIDs: postIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.EntityOps.WithLabelValues("tag", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// UpdateTag handles PUT /api/tags/:id
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tagService.UpdateTag(c.Context(), service.UpdateTagInput{
		TagID:   id,
		Name:    req.Name,
		PostIDs: req.PostIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.EntityOps.WithLabelValues("tag", "update").Inc()
	return c.JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tagService.DeleteTag(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.EntityOps.WithLabelValues("tag", "delete").Inc()
	return c.JSON(fiber.Map{"message": "Tag deleted"})
}
