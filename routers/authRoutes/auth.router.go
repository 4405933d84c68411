package authRoutes

import (
	authControllers "educa/controllers/auth"
	"educa/middleware"
	authValidators "educa/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authValidators.LoginHistoryList(), authControllers.LoginHistory)

	// Browser session for the manage pages
	accountGroup := app.Group("/accounts")
	accountGroup.Get("/login", authControllers.LoginPage)
	accountGroup.Post("/login", authControllers.LoginSubmit)
	accountGroup.Post("/logout", authControllers.Logout)
}
