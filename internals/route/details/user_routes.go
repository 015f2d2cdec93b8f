package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	notificationRoute "monrepetiteur_backend/internals/features/notifications/route"
	profileRoute "monrepetiteur_backend/internals/features/users/profile/route"
	userRoute "monrepetiteur_backend/internals/features/users/user/route"
	authMiddleware "monrepetiteur_backend/internals/middlewares/auth"
)

// UserRoutes wires everything that hangs off an authenticated account:
// the loose /api/u group, the admin /api/a group and the super-admin
// /api/sa group.
func UserRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	// 👤 Any authenticated user
	userGroup := api.Group("/u")
	notificationRoute.NotificationRoutes(userGroup, db)

	// 🔐 Admin and above
	adminGroup := api.Group("/a",
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("l'administration"),
			constants.AdminAndAbove...,
		),
	)
	userRoute.UserAdminRoutes(adminGroup, db)
	profileRoute.ProfileAdminRoutes(adminGroup, db)

	// 🔐 Super admin only
	superAdminGroup := api.Group("/sa",
		authMiddleware.OnlyRoles(
			constants.RoleErrorSuperAdmin("la gestion des rôles"),
			constants.SuperAdminOnly...,
		),
	)
	userRoute.UserSuperAdminRoutes(superAdminGroup, db)
}
