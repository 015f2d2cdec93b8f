package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	applicationRoute "monrepetiteur_backend/internals/features/marketplace/application/route"
	contractRoute "monrepetiteur_backend/internals/features/marketplace/contract/route"
	offerRoute "monrepetiteur_backend/internals/features/marketplace/offer/route"
	statsRoute "monrepetiteur_backend/internals/features/marketplace/stats/route"
	profileRoute "monrepetiteur_backend/internals/features/users/profile/route"
	helper "monrepetiteur_backend/internals/helpers"
	authMiddleware "monrepetiteur_backend/internals/middlewares/auth"
)

// MarketplaceRoutes wires the parent (/api/p), tutor (/api/t) and
// marketplace moderation (/api/a) surfaces.
func MarketplaceRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	// 📚 Catalogs are shared by every authenticated role.
	api.Get("/catalogs", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "", fiber.Map{
			"matieres":       constants.Matieres,
			"niveaux":        constants.Niveaux,
			"frequences":     constants.Frequences,
			"disponibilites": constants.Disponibilites,
		})
	})

	// 👨‍👩‍👧 Parents
	parentGroup := api.Group("/p",
		authMiddleware.OnlyRoles(
			constants.RoleErrorClient("l'espace parent"),
			constants.ClientOnly...,
		),
	)
	offerRoute.OfferParentRoutes(parentGroup, db)
	applicationRoute.ApplicationParentRoutes(parentGroup, db)
	contractRoute.ContractParentRoutes(parentGroup, db)
	statsRoute.StatsParentRoutes(parentGroup, db)

	// 🎓 Tutors
	tutorGroup := api.Group("/t",
		authMiddleware.OnlyRoles(
			constants.RoleErrorPrestataire("l'espace répétiteur"),
			constants.PrestataireOnly...,
		),
	)
	offerRoute.OfferTutorRoutes(tutorGroup, db)
	applicationRoute.ApplicationTutorRoutes(tutorGroup, db)
	contractRoute.ContractTutorRoutes(tutorGroup, db)
	statsRoute.StatsTutorRoutes(tutorGroup, db)
	profileRoute.ProfileTutorRoutes(tutorGroup, db)

	// 🔐 Marketplace moderation
	adminGroup := api.Group("/a",
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("la modération du marché"),
			constants.AdminAndAbove...,
		),
	)
	offerRoute.OfferAdminRoutes(adminGroup, db)
	statsRoute.StatsAdminRoutes(adminGroup, db)
}
