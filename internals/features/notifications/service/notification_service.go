package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/notifications/model"
)

// Notify records an outcome for a user. Failures are logged, never
// propagated: a lost toast must not fail the operation that produced it.
func Notify(db *gorm.DB, recipientID uuid.UUID, kind, title, body string, payload map[string]any) {
	n := model.NotificationModel{
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Body:        body,
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			n.Payload = datatypes.JSON(raw)
		}
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[WARN] notification %s for %s not recorded: %v", kind, recipientID, err)
	}
}

// MarkRead flips a notification owned by the recipient.
func MarkRead(db *gorm.DB, recipientID, notificationID uuid.UUID) error {
	res := db.Model(&model.NotificationModel{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
