package server

import (
	"errors"

	"guidepost/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCharacters returns the full character directory, name-ordered.
func (s *Server) GetCharacters(c *fiber.Ctx) error {
	characters, err := s.characterRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(characters)
}

// GetCharacter returns a single character by id.
func (s *Server) GetCharacter(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	character, err := s.characterRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Character", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(character)
}
