package serverutils

import (
	"errors"
	"log"

	"qa-agent-be/internal/service"
	"qa-agent-be/pkg/extract"
	"qa-agent-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbled up from controllers into
// a consistent JSON envelope. Domain sentinels map to client errors,
// everything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrEmptyKnowledgeBase),
			errors.Is(err, service.ErrFileTooLarge),
			errors.Is(err, extract.ErrUnsupportedFileType):
			code = fiber.StatusBadRequest
		case errors.Is(err, service.ErrTestCaseNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, llm.ErrUpstream):
			code = fiber.StatusBadGateway
		}

		if code == fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s failed: %v", ctx.Method(), ctx.Path(), err)
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
