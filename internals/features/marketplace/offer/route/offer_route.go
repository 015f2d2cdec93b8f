package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/offer/controller"
)

// OfferParentRoutes: a parent manages their own offers.
func OfferParentRoutes(parent fiber.Router, db *gorm.DB) {
	oc := controller.NewOfferController(db)

	offers := parent.Group("/offers")
	offers.Post("/", oc.Create)
	offers.Get("/", oc.ListMine)
	offers.Get("/:id", oc.Detail)
	offers.Patch("/:id/statut", oc.UpdateStatus)
}

// OfferTutorRoutes: tutors browse the open marketplace.
func OfferTutorRoutes(tutor fiber.Router, db *gorm.DB) {
	oc := controller.NewOfferController(db)

	offers := tutor.Group("/offers")
	offers.Get("/", oc.Browse)
	offers.Get("/:id", oc.Detail)
}

// OfferAdminRoutes: moderation over every offer.
func OfferAdminRoutes(admin fiber.Router, db *gorm.DB) {
	oc := controller.NewOfferController(db)

	offers := admin.Group("/offers")
	offers.Get("/", oc.AdminList)
	offers.Get("/:id", oc.Detail)
	offers.Patch("/:id/statut", oc.UpdateStatus)
	offers.Delete("/:id", oc.AdminDelete)
}
