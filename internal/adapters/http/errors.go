package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, route_not_found, upstream_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errFromDomain maps a pipeline error to its status code.
func errFromDomain(c *fiber.Ctx, err error) error {
	msg := publicMessage(c.UserContext(), err)
	switch domain.KindOf(err) {
	case domain.KindInvalid:
		return errBadRequest(c, msg)
	case domain.KindNotFound:
		return newError(c, fiber.StatusNotFound, "address_not_found", msg)
	case domain.KindRouteNotFound:
		return newError(c, fiber.StatusUnprocessableEntity, "route_not_found", msg)
	case domain.KindNetwork:
		return newError(c, fiber.StatusBadGateway, "upstream_error", msg)
	default:
		return errInternal(c, msg)
	}
}

// publicMessage is the text a caller may see for err. Provider failures can
// carry request URLs and credentials, so their details only go to the log.
func publicMessage(ctx context.Context, err error) string {
	switch domain.KindOf(err) {
	case domain.KindInvalid, domain.KindNotFound:
		return err.Error()
	case domain.KindRouteNotFound:
		return "no route between origin and destination"
	case domain.KindNetwork:
		LoggerFromCtx(ctx).Warn("upstream failure", "error", err)
		if op := domain.OpOf(err); op != "" {
			return "an upstream provider failed: " + op
		}
		return "an upstream provider failed"
	default:
		LoggerFromCtx(ctx).Error("directions failed", "error", err)
		return "internal error"
	}
}
