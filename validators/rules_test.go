package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string `form:"title" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Kind  string `validate:"omitempty,oneof=a b"`
}

func TestStructReportsFieldsByTagName(t *testing.T) {
	errs := Struct(sample{Title: "too long", Email: "nope", Kind: "c"})

	assert.Equal(t, map[string]string{
		"title": "Ensure this value has at most 5 characters.",
		"email": "Enter a valid email address.",
		"Kind":  "Select one of: a, b.",
	}, errs)

	assert.Empty(t, Struct(sample{Title: "ok"}))
	assert.Equal(t, "This field is required.", Struct(sample{})["title"])
}

func TestVar(t *testing.T) {
	assert.Empty(t, Var("https://example.com", "required,http_url"))
	assert.Equal(t, "Enter a valid URL.", Var("ftp:/x", "required,http_url"))
	assert.Equal(t, "This field is required.", Var("", "required"))
}

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", ParseID("id", "courseID"), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals("courseID"))
	})

	for path, want := range map[string]int{
		"/12":  fiber.StatusOK,
		"/0":   fiber.StatusNotFound,
		"/-3":  fiber.StatusNotFound,
		"/abc": fiber.StatusNotFound,
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
