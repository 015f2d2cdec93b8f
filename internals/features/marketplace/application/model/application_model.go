package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses as stored in applications.statut.
const (
	StatusEnAttente = "en_attente"
	StatusAcceptee  = "acceptee"
	StatusRefusee   = "refusee"
)

// ApplicationModel is a tutor's bid on an offer. The unique index on
// (offer_id, tutor_id) is what resolves the duplicate-submission race:
// the second writer gets a duplicated-key error, surfaced as a 409.
type ApplicationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OfferID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_offer_tutor" json:"offer_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_offer_tutor" json:"tutor_id"`
	Message   string    `gorm:"size:2000;not null" json:"message"`
	Statut    string    `gorm:"type:varchar(20);not null;default:'en_attente'" json:"statut"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ApplicationModel) TableName() string {
	return "applications"
}

func (a *ApplicationModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Statut == "" {
		a.Statut = StatusEnAttente
	}
	return nil
}
