package suedtirolmobil

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fugjoo/suedtirolmobil-go/efa"
)

// errorResponse is the JSON envelope for all failed requests.
type errorResponse struct {
	Error    string              `json:"error"`
	Messages []efa.SystemMessage `json:"messages,omitempty"`
}

func writeBadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: msg})
}

// writeClientError maps client errors onto HTTP statuses: rejected requests
// become 400, everything that failed on the backend side becomes 502. The
// backend's own messages are passed through when it signaled the failure.
func writeClientError(c *fiber.Ctx, log *zap.SugaredLogger, err error) error {
	var rejected *efa.BackendRejectedError
	var transport *efa.TransportError
	var signaled *efa.BackendSignaledError
	switch {
	case errors.As(err, &rejected):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	case errors.As(err, &transport):
		log.Warnw("backend transport failure", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: err.Error()})
	case errors.As(err, &signaled):
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{
			Error:    err.Error(),
			Messages: signaled.Messages,
		})
	default:
		log.Errorw("unexpected handler failure", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
	}
}
