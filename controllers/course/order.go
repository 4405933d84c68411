package controllers

import (
	"educa/database"
	"educa/logger"
	courseRepository "educa/repositories/course"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ModuleOrder applies drag and drop positions to the principal's modules
func ModuleOrder(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	orders := c.Locals("orders").(map[uint]int)

	updated, err := courseRepository.ReorderModules(database.Database.Db, userId, orders)
	if err != nil {
		return err
	}
	logger.Log.Debug("modules reordered", zap.Uint("userId", userId), zap.Int("sent", len(orders)), zap.Int64("updated", updated))

	return c.JSON(fiber.Map{"saved": "OK"})
}

// ContentOrder applies drag and drop positions to the principal's content rows
func ContentOrder(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	orders := c.Locals("orders").(map[uint]int)

	updated, err := courseRepository.ReorderContents(database.Database.Db, userId, orders)
	if err != nil {
		return err
	}
	logger.Log.Debug("contents reordered", zap.Uint("userId", userId), zap.Int("sent", len(orders)), zap.Int64("updated", updated))

	return c.JSON(fiber.Map{"saved": "OK"})
}
