package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "monrepetiteur_backend/internals/features/users/auth/route"
	rateLimiter "monrepetiteur_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api",
		rateLimiter.GlobalRateLimiter(),
	)
	authRoute.AuthRoutes(api, db)
}
