package routers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"educa/config"
	"educa/middleware"
	"educa/models"
	"educa/routers"
	"educa/testutil"
	"educa/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApp(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()
	db := testutil.Setup(t)
	utils.Media = utils.NewLocalStorage(config.AppConfig.MediaRoot, config.AppConfig.MediaURL)
	return db, routers.NewApp()
}

func bearer(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, app *fiber.App, path, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	return do(t, app, req)
}

func postForm(t *testing.T, app *fiber.App, path, auth string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	return do(t, app, req)
}

func postJSON(t *testing.T, app *fiber.App, path, auth, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	return do(t, app, req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
