package middleware

import (
	"net/url"
	"strings"

	"educa/database"
	"educa/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// TokenCookie carries the JWT for server-rendered pages
const TokenCookie = "token"

// LoginPath is where unauthenticated page requests are sent
const LoginPath = "/accounts/login"

// basicUserKey holds the email accepted by BasicAuth
const basicUserKey = "basicUser"

var (
	ErrNoCredentials      = errors.New("no credentials supplied")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// BasicAuth checks HTTP Basic credentials against the user table and
// answers 401 when they are wrong. Requests without a Basic header pass
// through untouched so Bearer and cookie auth still apply.
func BasicAuth() fiber.Handler {
	return basicauth.New(basicauth.Config{
		Next: func(c *fiber.Ctx) bool {
			return !strings.HasPrefix(c.Get(fiber.HeaderAuthorization), "Basic ")
		},
		Realm: "api",
		Authorizer: func(email, password string) bool {
			_, err := CheckPassword(email, password)
			return err == nil
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="api"`)
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired credentials.", nil)
		},
		ContextUsername: basicUserKey,
	})
}

// Authenticate resolves the principal from a Bearer token, HTTP Basic
// credentials or the token cookie, in that order. Basic credentials count
// only once BasicAuth has accepted them.
func Authenticate(c *fiber.Ctx) (uint, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	switch {
	case strings.HasPrefix(authHeader, "Bearer "):
		return ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
	case strings.HasPrefix(authHeader, "Basic "):
		return basicPrincipal(c)
	case authHeader != "":
		return 0, ErrInvalidCredentials
	}

	if token := c.Cookies(TokenCookie); token != "" {
		return ParseJWT(token)
	}
	return 0, ErrNoCredentials
}

// CheckPassword looks the user up by email and verifies the bcrypt hash
func CheckPassword(email, password string) (*models.User, error) {
	var user models.User
	if err := database.Database.Db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func basicPrincipal(c *fiber.Ctx) (uint, error) {
	email, _ := c.Locals(basicUserKey).(string)
	if email == "" {
		return 0, ErrInvalidCredentials
	}

	var user models.User
	if err := database.Database.Db.Select("id").Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// APIAuthMiddleware answers 401 JSON when no valid principal is present
func APIAuthMiddleware(c *fiber.Ctx) error {
	userID, err := Authenticate(c)
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="api"`)
		if errors.Is(err, ErrNoCredentials) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication credentials were not provided.", nil)
		}
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired credentials.", nil)
	}

	c.Locals("userId", userID)
	return c.Next()
}

// PageAuthMiddleware redirects unauthenticated browsers to the login page
func PageAuthMiddleware(c *fiber.Ctx) error {
	userID, err := Authenticate(c)
	if err != nil {
		return c.Redirect(LoginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}

	c.Locals("userId", userID)
	return c.Next()
}
