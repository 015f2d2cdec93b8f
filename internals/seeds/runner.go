package seeds

import (
	"gorm.io/gorm"

	marketplace "monrepetiteur_backend/internals/seeds/marketplace"
	users "monrepetiteur_backend/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	marketplace.SeedOffersFromJSON(db, "internals/seeds/marketplace/data_offers.json")
}
