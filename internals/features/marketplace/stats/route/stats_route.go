package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/stats/controller"
)

func StatsParentRoutes(parent fiber.Router, db *gorm.DB) {
	sc := controller.NewStatsController(db)
	parent.Get("/stats", sc.ParentDashboard)
}

func StatsTutorRoutes(tutor fiber.Router, db *gorm.DB) {
	sc := controller.NewStatsController(db)
	tutor.Get("/stats", sc.TutorDashboard)
}

func StatsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	sc := controller.NewStatsController(db)
	admin.Get("/stats", sc.AdminDashboard)
}
