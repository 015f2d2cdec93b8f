package dto

import (
	"time"

	"github.com/google/uuid"

	"monrepetiteur_backend/internals/features/marketplace/contract/model"
)

type UpdateContractStatusRequest struct {
	Statut string `json:"statut" validate:"required,oneof=actif termine annule"`
}

type UpdateContractTarifRequest struct {
	TarifConvenu int `json:"tarif_convenu" validate:"required,gte=1000,lte=100000"`
}

type ContractResponse struct {
	ID           uuid.UUID  `json:"id"`
	OfferID      uuid.UUID  `json:"offer_id"`
	ParentID     uuid.UUID  `json:"parent_id"`
	TutorID      uuid.UUID  `json:"tutor_id"`
	ParentName   string     `json:"parent_name,omitempty"`
	TutorName    string     `json:"tutor_name,omitempty"`
	Matiere      string     `json:"matiere"`
	Niveau       string     `json:"niveau"`
	Frequence    string     `json:"frequence"`
	Adresse      string     `json:"adresse"`
	TarifConvenu *int       `json:"tarif_convenu"`
	Statut       string     `json:"statut"`
	DateDebut    time.Time  `json:"date_debut"`
	DateFin      *time.Time `json:"date_fin"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromModel(c *model.ContractModel) ContractResponse {
	return ContractResponse{
		ID:           c.ID,
		OfferID:      c.OfferID,
		ParentID:     c.ParentID,
		TutorID:      c.TutorID,
		Matiere:      c.Matiere,
		Niveau:       c.Niveau,
		Frequence:    c.Frequence,
		Adresse:      c.Adresse,
		TarifConvenu: c.TarifConvenu,
		Statut:       c.Statut,
		DateDebut:    c.DateDebut,
		DateFin:      c.DateFin,
		CreatedAt:    c.CreatedAt,
	}
}
