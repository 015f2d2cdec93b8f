package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/application/controller"
)

// ApplicationTutorRoutes: a tutor submits and follows their applications.
func ApplicationTutorRoutes(tutor fiber.Router, db *gorm.DB) {
	ac := controller.NewApplicationController(db)

	apps := tutor.Group("/applications")
	apps.Post("/", ac.Submit)
	apps.Get("/", ac.ListMine)
}

// ApplicationParentRoutes: a parent decides on received applications.
func ApplicationParentRoutes(parent fiber.Router, db *gorm.DB) {
	ac := controller.NewApplicationController(db)

	parent.Patch("/applications/:id/decision", ac.Decide)
}
