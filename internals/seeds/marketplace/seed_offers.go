package marketplace

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/offer/model"
	authHelper "monrepetiteur_backend/internals/features/users/auth/helper"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
)

type OfferSeed struct {
	ParentPhone string `json:"parent_phone"`
	Matiere     string `json:"matiere"`
	Niveau      string `json:"niveau"`
	Description string `json:"description"`
	Adresse     string `json:"adresse"`
	Frequence   string `json:"frequence"`
	BudgetMin   int    `json:"budget_min"`
	BudgetMax   int    `json:"budget_max"`
}

// SeedOffersFromJSON inserts demo offers owned by already-seeded
// parents, matched by phone.
func SeedOffersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading offer seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Cannot read seed file: %v", err)
	}

	var inputs []OfferSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Cannot decode seed file: %v", err)
	}

	for _, data := range inputs {
		phone, ok := authHelper.NormalizePhone(data.ParentPhone)
		if !ok {
			log.Printf("❌ Invalid parent phone '%s', skipped.", data.ParentPhone)
			continue
		}

		var parent userModel.UserModel
		if err := db.Where("phone = ?", phone).First(&parent).Error; err != nil {
			log.Printf("❌ Parent '%s' not found, skipped.", phone)
			continue
		}

		var existing int64
		db.Model(&model.OfferModel{}).
			Where("parent_id = ? AND matiere = ? AND niveau = ?", parent.ID, data.Matiere, data.Niveau).
			Count(&existing)
		if existing > 0 {
			log.Printf("ℹ️ Offer '%s / %s' already exists for '%s', skipped.", data.Matiere, data.Niveau, phone)
			continue
		}

		offer := model.OfferModel{
			ParentID:    parent.ID,
			Matiere:     data.Matiere,
			Niveau:      data.Niveau,
			Description: data.Description,
			Adresse:     data.Adresse,
			Frequence:   data.Frequence,
			BudgetMin:   data.BudgetMin,
			BudgetMax:   data.BudgetMax,
			Statut:      model.StatusOuverte,
		}
		if err := db.Create(&offer).Error; err != nil {
			log.Printf("❌ Cannot create offer: %v", err)
			continue
		}
		log.Printf("✅ Seeded offer '%s / %s'", offer.Matiere, offer.Niveau)
	}
}
