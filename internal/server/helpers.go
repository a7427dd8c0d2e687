package server

import (
	"errors"
	"strconv"
	"strings"

	"motorlot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// parseID extracts a route parameter by name as a positive uint. On failure it
// writes a 400 JSON response and returns errResponseWritten; callers should
// check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param != "id" {
			label = param
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// queryUintPtr parses an optional positive-integer query parameter. A missing
// or empty parameter yields nil; anything unparsable yields nil as well, so a
// malformed filter matches nothing rather than erroring the whole search.
func queryUintPtr(c *fiber.Ctx, name string) *uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

// queryIntPtr parses an optional integer query parameter.
func queryIntPtr(c *fiber.Ctx, name string) *int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryUintList parses a comma-separated list of ids, e.g. features=1,4,9.
func queryUintList(c *fiber.Ctx, name string) []uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(v))
	}
	return ids
}
