package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/contract/controller"
)

// ContractParentRoutes: the parent drives the contract life cycle.
func ContractParentRoutes(parent fiber.Router, db *gorm.DB) {
	cc := controller.NewContractController(db)

	contracts := parent.Group("/contracts")
	contracts.Get("/", cc.ListMine)
	contracts.Patch("/:id/statut", cc.UpdateStatus)
	contracts.Patch("/:id/tarif", cc.UpdateTarif)
}

// ContractTutorRoutes: tutors read their contracts.
func ContractTutorRoutes(tutor fiber.Router, db *gorm.DB) {
	cc := controller.NewContractController(db)

	tutor.Get("/contracts", cc.ListMine)
}
