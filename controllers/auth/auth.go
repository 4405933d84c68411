package authController

import (
	"strings"
	"time"

	"educa/config"
	"educa/database"
	"educa/logger"
	"educa/middleware"
	"educa/models"
	authValidator "educa/validators/auth"
	"educa/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultNext is where a page login lands without a usable next parameter
const defaultNext = "/course/mine"

func Signup(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*authValidator.SignupRequest)
	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		logger.Log.Error("hashing password failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Role:     reqData.Role,
		Password: string(hashedPassword),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		return SeedPermissions(tx, newUser.Role, newUser.ID)
	})
	if err != nil {
		logger.Log.Error("signup failed", zap.String("email", newUser.Email), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	logger.Log.Info("user signed up", zap.Uint("userId", newUser.ID), zap.String("role", newUser.Role))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// SeedPermissions grants the default capabilities of a role to a user
func SeedPermissions(db *gorm.DB, role string, userID uint) error {
	capabilities := defaultCapabilities(role)
	if len(capabilities) == 0 {
		return nil
	}

	permissionRecords := make([]models.Permission, 0, len(capabilities))
	for _, p := range capabilities {
		permissionRecords = append(permissionRecords, models.Permission{
			UserID:     userID,
			Role:       role,
			Permission: p,
		})
	}

	return db.Omit("User").Create(&permissionRecords).Error
}

// defaultCapabilities lists what a fresh account of role may do. Students only read the API.
func defaultCapabilities(role string) []models.Capability {
	switch role {
	case models.RoleInstructor, models.RoleAdmin:
		return models.CourseCapabilities
	}
	return nil
}

// touchLastLogin stamps the user and appends a login history row.
// Failures are logged only, they never block a sign-in.
func touchLastLogin(c *fiber.Ctx, user *models.User) {
	db := database.Database.Db
	now := time.Now()
	user.LastLogin = &now
	if err := db.Model(user).Update("last_login", now).Error; err != nil {
		logger.Log.Warn("saving last login failed", zap.Uint("userId", user.ID), zap.Error(err))
	}

	ip := c.IP()
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	device := c.Get(fiber.HeaderUserAgent)
	if len(device) > 255 {
		device = device[:255]
	}

	tracking := models.LoginTracking{UserID: user.ID, IPAddress: ip, Device: device}
	if err := db.Create(&tracking).Error; err != nil {
		logger.Log.Warn("saving login tracking failed", zap.Uint("userId", user.ID), zap.Error(err))
	}
}

// Login answers a JWT for valid JSON credentials
func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	user, err := middleware.CheckPassword(reqData.Email, reqData.Password)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}
	touchLastLogin(c, user)

	token, err := middleware.GenerateJWT(*user)
	if err != nil {
		logger.Log.Error("token generation failed", zap.Uint("userId", user.ID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated user
func Me(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched.", user)
}

// LoginHistory pages through the caller's sign-ins, newest first
func LoginHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reqData := c.Locals("validatedLoginHistory").(*authValidator.LoginHistoryQuery)
	db := database.Database.Db

	var total int64
	if err := db.Model(&models.LoginTracking{}).Where("user_id = ?", userId).Count(&total).Error; err != nil {
		logger.Log.Error("counting login history failed", zap.Uint("userId", userId), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	var loginTracking []models.LoginTracking
	offset := (reqData.Page - 1) * reqData.Limit
	if err := db.Where("user_id = ?", userId).
		Order("created_at DESC, id DESC").
		Limit(reqData.Limit).
		Offset(offset).
		Find(&loginTracking).Error; err != nil {
		logger.Log.Error("listing login history failed", zap.Uint("userId", userId), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched.", fiber.Map{
		"loginTracking": loginTracking,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// safeNext keeps redirects on this host
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultNext
	}
	return next
}

// LoginPage renders the browser login form
func LoginPage(c *fiber.Ctx) error {
	return views.Page(c, "registration/login", fiber.Map{
		"Title": "Log-in",
		"Next":  safeNext(c.Query("next")),
	})
}

// LoginSubmit checks the form credentials, stores the JWT in the token
// cookie and follows next.
func LoginSubmit(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	next := safeNext(c.FormValue("next"))

	user, err := middleware.CheckPassword(email, c.FormValue("password"))
	if err != nil {
		return views.Page(c, "registration/login", fiber.Map{
			"Title": "Log-in",
			"Error": "Please enter a correct email and password.",
			"Email": email,
			"Next":  next,
		})
	}
	touchLastLogin(c, user)

	token, err := middleware.GenerateJWT(*user)
	if err != nil {
		return err
	}

	ttl := config.AppConfig.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   config.AppConfig.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(next, fiber.StatusSeeOther)
}

// Logout clears the token cookie
func Logout(c *fiber.Ctx) error {
	c.ClearCookie(middleware.TokenCookie)
	return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
}
