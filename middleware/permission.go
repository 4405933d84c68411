package middleware

import (
	"educa/database"
	"educa/logger"
	"educa/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HasCapability reports whether the user holds the capability grant
func HasCapability(userID uint, capability models.Capability) (bool, error) {
	var count int64
	err := database.Database.Db.Model(&models.Permission{}).
		Where("user_id = ? AND permission = ?", userID, capability).
		Count(&count).Error
	return count > 0, err
}

// CheckPermissionMiddleware returns a middleware that checks if the user has the required capability
func CheckPermissionMiddleware(required models.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		allowed, err := HasCapability(userID, required)
		if err != nil {
			logger.Log.Error("permission lookup failed", zap.Uint("userId", userID), zap.String("capability", string(required)), zap.Error(err))
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		if !allowed {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
