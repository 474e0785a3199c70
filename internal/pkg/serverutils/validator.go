package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// 400 fiber error so the error middleware can render them uniformly.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		parts := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			parts = append(parts, fmt.Sprintf("field '%s' failed on the '%s' rule", fieldErr.Field(), fieldErr.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(parts, "; "))
	}

	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
