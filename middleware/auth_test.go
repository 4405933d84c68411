package middleware_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"educa/config"
	"educa/middleware"
	"educa/models"
	"educa/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principalApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.BasicAuth())
	app.Get("/api", middleware.APIAuthMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": c.Locals("userId")})
	})
	app.Get("/page", middleware.PageAuthMiddleware, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/manage", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware(models.AddCourse), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func request(t *testing.T, app *fiber.App, path string, prepare func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if prepare != nil {
		prepare(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthenticateAcceptsEveryCredentialKind(t *testing.T) {
	db := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)
	token, err := middleware.GenerateJWT(user)
	require.NoError(t, err)
	app := principalApp()

	cases := map[string]func(*http.Request){
		"bearer": func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
		"basic": func(r *http.Request) {
			r.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("student@example.com:"+testutil.Password)))
		},
		"cookie": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token}) },
	}
	for name, prepare := range cases {
		resp := request(t, app, "/api", prepare)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, name)
	}
}

func TestAPIAuthRejectsMissingAndBadCredentials(t *testing.T) {
	db := testutil.Setup(t)
	testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)
	app := principalApp()

	resp := request(t, app, "/api", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Basic realm="api"`, resp.Header.Get(fiber.HeaderWWWAuthenticate))

	for _, header := range []string{
		"Bearer not-a-token",
		"Basic " + base64.StdEncoding.EncodeToString([]byte("student@example.com:wrong")),
		"Basic ???",
		"Token abc",
	} {
		resp = request(t, app, "/api", func(r *http.Request) { r.Header.Set("Authorization", header) })
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestPageAuthRedirectsToLogin(t *testing.T) {
	testutil.Setup(t)

	resp := request(t, principalApp(), "/page?x=1", nil)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/accounts/login?next=%2Fpage%3Fx%3D1", resp.Header.Get(fiber.HeaderLocation))
}

func TestParseJWTRejectsForeignSignature(t *testing.T) {
	testutil.Setup(t)
	token, err := middleware.GenerateJWT(models.User{ID: 7, Email: "a@example.com"})
	require.NoError(t, err)

	id, err := middleware.ParseJWT(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)

	_, err = middleware.ParseJWT(token + "x")
	assert.ErrorIs(t, err, middleware.ErrInvalidCredentials)

	config.AppConfig.JWTKey = "other-secret"
	_, err = middleware.ParseJWT(token)
	assert.ErrorIs(t, err, middleware.ErrInvalidCredentials)
}

func TestBasicAuthChecksCredentialsAppWide(t *testing.T) {
	db := testutil.Setup(t)
	testutil.CreateUser(t, db, "student@example.com", models.RoleStudent)
	good := "Basic " + base64.StdEncoding.EncodeToString([]byte("student@example.com:"+testutil.Password))
	bad := "Basic " + base64.StdEncoding.EncodeToString([]byte("student@example.com:wrong"))

	app := fiber.New()
	app.Use(middleware.BasicAuth())
	app.Get("/open", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp := request(t, app, "/open", func(r *http.Request) { r.Header.Set("Authorization", bad) })
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Basic realm="api"`, resp.Header.Get(fiber.HeaderWWWAuthenticate))

	resp = request(t, app, "/open", func(r *http.Request) { r.Header.Set("Authorization", good) })
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, app, "/open", func(r *http.Request) { r.Header.Set("Authorization", "Bearer whatever") })
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// without BasicAuth in front the header is never trusted
	bare := fiber.New()
	bare.Get("/api", middleware.APIAuthMiddleware, func(c *fiber.Ctx) error { return c.SendString("ok") })
	resp = request(t, bare, "/api", func(r *http.Request) { r.Header.Set("Authorization", good) })
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
