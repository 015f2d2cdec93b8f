package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/users/user/controller"
)

// UserAdminRoutes: account moderation (admin and above).
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	uc := controller.NewUserAdminController(db)

	users := admin.Group("/users")
	users.Get("/", uc.List)
	users.Patch("/:id/active", uc.ToggleActive)
}

// UserSuperAdminRoutes: role changes are reserved to the super admin.
func UserSuperAdminRoutes(superAdmin fiber.Router, db *gorm.DB) {
	uc := controller.NewUserAdminController(db)

	superAdmin.Patch("/users/:id/role", uc.ChangeRole)
}
