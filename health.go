package suedtirolmobil

import "github.com/gofiber/fiber/v2"

type healthResponse struct {
	Status string `json:"status"`
}

func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "ok"})
}
