package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags handles GET /api/v1/admin/feature-flags and reports the
// configured flags plus their evaluation for the calling client.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags":     s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(c.IP()),
	})
}
