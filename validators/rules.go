package validators

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"educa/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// report fields by their form/json name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.Split(field.Tag.Get(tag), ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// Struct validates s and returns one message per failing field
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(s); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				if _, seen := errs[fe.Field()]; !seen {
					errs[fe.Field()] = message(fe)
				}
			}
		}
	}
	return errs
}

// Var validates a single value against tag and returns its message or ""
func Var(value interface{}, tag string) string {
	if err := validate.Var(value, tag); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			return message(fieldErrors[0])
		}
		return "Enter a valid value."
	}
	return ""
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "url", "http_url":
		return "Enter a valid URL."
	case "oneof":
		return "Select one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	}
	return "Enter a valid value."
}

// ParseID stores a positive integer route parameter in c.Locals under local.
// Anything else is answered with 404, as no route would match it.
func ParseID(param, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(strings.TrimSpace(c.Params(param)))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found.", nil)
		}
		c.Locals(local, uint(id))
		return c.Next()
	}
}

// FormsetError rejects a multi-row form whose management fields are unusable
func FormsetError(c *fiber.Ctx, message string) error {
	return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
}
