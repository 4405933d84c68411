package courseValidator

import (
	"strconv"

	"educa/middleware"

	"github.com/gofiber/fiber/v2"
)

// OrderPayload parses a JSON object of {"<id>": <order>} into "orders"
func OrderPayload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var raw map[string]int
		if err := c.App().Config().JSONDecoder(c.Body(), &raw); err != nil || raw == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Expected a JSON object of id to order!", nil)
		}

		orders := make(map[uint]int, len(raw))
		for key, order := range raw {
			id, err := strconv.ParseUint(key, 10, 64)
			if err != nil || id == 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id: "+key, nil)
			}
			orders[uint(id)] = order
		}

		c.Locals("orders", orders)
		return c.Next()
	}
}
