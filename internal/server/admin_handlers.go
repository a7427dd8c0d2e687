package server

import (
	"crypto/subtle"
	"strings"
	"time"

	"motorlot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 24 * time.Hour

// AdminLogin handles POST /api/v1/admin/login. On success it returns a signed
// bearer token for the admin surface.
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	if !s.checkAdminCredentials(req.Username, req.Password) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": req.Username,
		"iss": "motorlot-api",
		"aud": "motorlot-admin",
		"iat": now.Unix(),
		"exp": now.Add(adminTokenTTL).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token":      signed,
		"expires_in": int(adminTokenTTL.Seconds()),
	})
}

// checkAdminCredentials compares against the configured admin account. The
// configured password may be a bcrypt hash; a plain value is compared in
// constant time for dev setups.
func (s *Server) checkAdminCredentials(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) != 1 {
		return false
	}
	stored := s.config.AdminPassword
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}
