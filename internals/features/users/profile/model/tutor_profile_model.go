package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TutorProfileModel is the 1:1 profile of a prestataire (répétiteur).
// profil_complet is derived and recomputed on every save; documents_valides
// is set exclusively by admins after reviewing uploaded documents.
type TutorProfileModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Bio              string         `gorm:"size:1000" json:"bio"`
	Matieres         pq.StringArray `gorm:"type:text[]" json:"matieres"`
	Niveaux          pq.StringArray `gorm:"type:text[]" json:"niveaux"`
	Disponibilites   pq.StringArray `gorm:"type:text[]" json:"disponibilites"`
	Localisation     string         `gorm:"size:255" json:"localisation"`
	TarifHoraire     *int           `json:"tarif_horaire,omitempty"`
	ExperienceAnnees int            `gorm:"not null;default:0" json:"experience_annees"`
	ProfilComplet    bool           `gorm:"not null;default:false" json:"profil_complet"`
	DocumentsValides bool           `gorm:"not null;default:false" json:"documents_valides"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TutorProfileModel) TableName() string {
	return "tutor_profiles"
}

func (p *TutorProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
