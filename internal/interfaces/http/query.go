package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
)

// queryBool "true"/"false"; cualquier otro valor se ignora (sin filtro).
func queryBool(c *fiber.Ctx, key string) *bool {
	var v bool
	switch c.Query(key) {
	case "true":
		v = true
	case "false":
		v = false
	default:
		return nil
	}
	return &v
}

func pageQuery(c *fiber.Ctx) dto.PageQuery {
	return dto.PageQuery{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)}
}
