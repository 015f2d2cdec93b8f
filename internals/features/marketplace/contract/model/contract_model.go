package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract statuses as stored in contracts.statut.
const (
	StatusActif   = "actif"
	StatusTermine = "termine"
	StatusAnnule  = "annule"
)

// ContractModel is the engagement formed when a parent accepts an
// application. Matiere/niveau/frequence/adresse are copied from the offer at
// acceptance time so contracts render without a join.
type ContractModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OfferID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"offer_id"`
	ParentID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"parent_id"`
	TutorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"tutor_id"`
	Matiere      string     `gorm:"size:100;not null" json:"matiere"`
	Niveau       string     `gorm:"size:100;not null" json:"niveau"`
	Frequence    string     `gorm:"size:100;not null" json:"frequence"`
	Adresse      string     `gorm:"size:255;not null" json:"adresse"`
	TarifConvenu *int       `json:"tarif_convenu,omitempty"`
	DateDebut    time.Time  `gorm:"not null" json:"date_debut"`
	DateFin      *time.Time `json:"date_fin,omitempty"`
	Statut       string     `gorm:"type:varchar(20);not null;default:'actif'" json:"statut"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContractModel) TableName() string {
	return "contracts"
}

func (ct *ContractModel) BeforeCreate(tx *gorm.DB) error {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	if ct.Statut == "" {
		ct.Statut = StatusActif
	}
	return nil
}
