package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/stats/service"
	helper "monrepetiteur_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

func (sc *StatsController) AdminDashboard(c *fiber.Ctx) error {
	stats, err := service.ComputeAdminStats(sc.DB)
	if err != nil {
		log.Println("[ERROR] admin stats:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de calculer les statistiques")
	}
	return helper.JsonOK(c, "", stats)
}

func (sc *StatsController) ParentDashboard(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}
	stats, err := service.ComputeParentStats(sc.DB, userID)
	if err != nil {
		log.Println("[ERROR] parent stats:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de calculer les statistiques")
	}
	return helper.JsonOK(c, "", stats)
}

func (sc *StatsController) TutorDashboard(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}
	stats, err := service.ComputeTutorStats(sc.DB, userID)
	if err != nil {
		log.Println("[ERROR] tutor stats:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de calculer les statistiques")
	}
	return helper.JsonOK(c, "", stats)
}
