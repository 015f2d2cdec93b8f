package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer statuses as stored in offers.statut.
const (
	StatusOuverte = "ouverte"
	StatusEnCours = "en_cours"
	StatusFermee  = "fermee"
)

var Statuses = []string{StatusOuverte, StatusEnCours, StatusFermee}

// OfferModel is a parent's tutoring request. Budgets are FCFA;
// budget_max >= budget_min always holds.
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ParentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"parent_id"`
	Matiere     string    `gorm:"size:100;not null" json:"matiere"`
	Niveau      string    `gorm:"size:100;not null" json:"niveau"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	Adresse     string    `gorm:"size:255;not null" json:"adresse"`
	Frequence   string    `gorm:"size:100;not null" json:"frequence"`
	BudgetMin   int       `gorm:"not null" json:"budget_min"`
	BudgetMax   int       `gorm:"not null" json:"budget_max"`
	Statut      string    `gorm:"type:varchar(20);not null;default:'ouverte'" json:"statut"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OfferModel) TableName() string {
	return "offers"
}

func (o *OfferModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Statut == "" {
		o.Statut = StatusOuverte
	}
	return nil
}

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
