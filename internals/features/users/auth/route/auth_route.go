package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/users/auth/controller"
	"monrepetiteur_backend/internals/middlewares"
	authMiddleware "monrepetiteur_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public auth endpoints plus the token-protected
// session endpoints under the same group.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ac := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ac.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ac.Login)
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ac.LoginGoogle)
	auth.Post("/refresh-token", ac.Refresh)

	protected := auth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ac.Logout)
	protected.Get("/me", ac.Me)
	protected.Post("/change-password", ac.ChangePassword)
}
