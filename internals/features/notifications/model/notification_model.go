package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification kinds.
const (
	KindApplicationRecue    = "application_recue"
	KindApplicationAcceptee = "application_acceptee"
	KindApplicationRefusee  = "application_refusee"
	KindContratCree         = "contrat_cree"
	KindContratTermine      = "contrat_termine"
	KindContratAnnule       = "contrat_annule"
)

// NotificationModel records an operation outcome for a user. The SPA polls
// these; payload carries the referenced entity ids.
type NotificationModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Kind        string         `gorm:"size:50;not null" json:"kind"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Body        string         `gorm:"size:1000" json:"body"`
	Payload     datatypes.JSON `json:"payload,omitempty"`
	Read        bool           `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
