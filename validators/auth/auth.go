package authValidator

import (
	"strings"

	"educa/middleware"
	"educa/models"
	"educa/validators"

	"github.com/gofiber/fiber/v2"
)

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=STUDENT INSTRUCTOR"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		if reqData.Role == "" {
			reqData.Role = models.RoleStudent
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// LoginHistoryQuery pages through GET /auth/login/history
type LoginHistoryQuery struct {
	Page  int `query:"page" json:"page" validate:"min=1"`
	Limit int `query:"limit" json:"limit" validate:"min=1,max=100"`
}

// LoginHistoryList validator middleware. Page and limit default to 1 and 20.
func LoginHistoryList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &LoginHistoryQuery{Page: 1, Limit: 20}
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLoginHistory", reqData)
		return c.Next()
	}
}
