package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "monrepetiteur_backend/internals/features/users/auth/model"
)

const cleanupInterval = 1 * time.Hour

// StartTokenCleanupScheduler periodically purges expired blacklist
// entries and revoked/expired refresh tokens so the tables stay small.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()

			res := db.Unscoped().
				Where("expired_at < ?", now).
				Delete(&authModel.TokenBlacklist{})
			if res.Error != nil {
				log.Println("[ERROR] blacklist cleanup:", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[INFO] blacklist cleanup: %d token(s) purged", res.RowsAffected)
			}

			res = db.
				Where("expires_at < ? OR revoked_at IS NOT NULL", now).
				Delete(&authModel.RefreshToken{})
			if res.Error != nil {
				log.Println("[ERROR] refresh token cleanup:", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[INFO] refresh token cleanup: %d token(s) purged", res.RowsAffected)
			}
		}
	}()
}
