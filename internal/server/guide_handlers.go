package server

import (
	"io"

	"guidepost/internal/models"
	"guidepost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitGuide accepts a multipart guide submission. Text fields: username,
// character_name, title, description. The picture part is optional.
func (s *Server) SubmitGuide(c *fiber.Ctx) error {
	ctx := c.UserContext()

	in := service.SubmitGuideInput{
		Username:      c.FormValue("username"),
		CharacterName: c.FormValue("character_name"),
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
	}

	if fileHeader, err := c.FormFile("picture"); err == nil && fileHeader != nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unreadable picture upload"))
		}
		content, readErr := io.ReadAll(file)
		_ = file.Close()
		if readErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unreadable picture upload"))
		}
		in.Picture = &service.AcceptInput{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     content,
		}
	}

	guide, err := s.guideService.Submit(ctx, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(guide)
}

// GetGuides returns the approved, publicly visible guides.
func (s *Server) GetGuides(c *fiber.Ctx) error {
	guides, err := s.guideService.ListApproved(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(guides)
}

// GetPendingGuides returns the moderation queue.
func (s *Server) GetPendingGuides(c *fiber.Ctx) error {
	guides, err := s.guideService.ListPending(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(guides)
}

// GetGuide returns a single guide by id.
func (s *Server) GetGuide(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	guide, err := s.guideService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(guide)
}

// ApproveGuide publishes a pending guide.
func (s *Server) ApproveGuide(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	guide, err := s.guideService.Approve(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(guide)
}

// RejectGuide archives a pending guide out of every read path.
func (s *Server) RejectGuide(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.guideService.Reject(c.UserContext(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Guide rejected"})
}
