package users

import (
	"encoding/json"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	authHelper "monrepetiteur_backend/internals/features/users/auth/helper"
	profileModel "monrepetiteur_backend/internals/features/users/profile/model"
	"monrepetiteur_backend/internals/features/users/user/model"
)

type UserSeed struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON inserts accounts from a JSON file, skipping phones
// that already exist. Prestataires get their empty profile row.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading user seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Cannot read seed file: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Cannot decode seed file: %v", err)
	}

	for _, data := range inputs {
		phone, ok := authHelper.NormalizePhone(data.Phone)
		if !ok {
			log.Printf("❌ Invalid phone '%s', skipped.", data.Phone)
			continue
		}

		var existing model.UserModel
		if err := db.Where("phone = ?", phone).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User '%s' already exists, skipped.", phone)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Cannot hash password for '%s': %v", phone, err)
			continue
		}

		user := model.UserModel{
			FullName: data.FullName,
			Phone:    phone,
			Email:    authHelper.PhoneToEmail(phone),
			Password: string(hash),
			Role:     data.Role,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Cannot create user '%s': %v", phone, err)
			continue
		}
		if user.Role == constants.RolePrestataire {
			if err := db.Create(&profileModel.TutorProfileModel{UserID: user.ID}).Error; err != nil {
				log.Printf("❌ Cannot create profile for '%s': %v", phone, err)
			}
		}
		log.Printf("✅ Seeded user '%s' (%s)", user.FullName, user.Role)
	}
}
