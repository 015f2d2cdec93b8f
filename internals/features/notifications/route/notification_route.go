package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/notifications/controller"
)

func NotificationRoutes(user fiber.Router, db *gorm.DB) {
	nc := controller.NewNotificationController(db)

	notifications := user.Group("/notifications")
	notifications.Get("/", nc.ListMine)
	notifications.Patch("/:id/read", nc.MarkRead)
}
