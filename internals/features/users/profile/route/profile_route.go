package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/users/profile/controller"
)

// ProfileTutorRoutes: a tutor maintains their public profile and
// uploads identity documents.
func ProfileTutorRoutes(tutor fiber.Router, db *gorm.DB) {
	pc := controller.NewProfileController(db)
	dc := controller.NewDocumentController(db)

	profile := tutor.Group("/profile")
	profile.Get("/", pc.GetMine)
	profile.Put("/", pc.UpdateMine)

	documents := tutor.Group("/documents")
	documents.Get("/", dc.ListMine)
	documents.Post("/:kind", dc.Upload)
}

// ProfileAdminRoutes: moderation of tutor profiles and documents.
func ProfileAdminRoutes(admin fiber.Router, db *gorm.DB) {
	pc := controller.NewProfileController(db)
	dc := controller.NewDocumentController(db)

	tutors := admin.Group("/tutors")
	tutors.Get("/", pc.AdminListTutors)
	tutors.Get("/:userId/documents", dc.AdminListForUser)
	tutors.Patch("/:userId/documents-validation", pc.AdminValidateDocuments)
}
