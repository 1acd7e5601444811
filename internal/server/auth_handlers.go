package server

import (
	"guidepost/internal/models"
	"guidepost/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the credential payload for Login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies the moderator credentials and returns a signed bearer
// token together with the authenticated principal.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	principal := s.authenticator.Authenticate(req.Email, req.Password)
	if principal == nil {
		observability.LoginAttempts.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	token, err := s.tokenIssuer.Issue(principal)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	return c.JSON(fiber.Map{
		"token": token,
		"user":  principal,
	})
}
