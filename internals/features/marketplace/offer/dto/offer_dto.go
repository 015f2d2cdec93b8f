package dto

import (
	"time"

	"github.com/google/uuid"

	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	"monrepetiteur_backend/internals/features/marketplace/offer/model"
)

type CreateOfferRequest struct {
	Matiere     string `json:"matiere" validate:"required"`
	Niveau      string `json:"niveau" validate:"required"`
	Description string `json:"description" validate:"required,min=10,max=2000"`
	Adresse     string `json:"adresse" validate:"required,max=255"`
	Frequence   string `json:"frequence" validate:"required"`
	BudgetMin   int    `json:"budget_min" validate:"required,gt=0"`
	BudgetMax   int    `json:"budget_max" validate:"required,gt=0,gtefield=BudgetMin"`
}

func (r CreateOfferRequest) Fields() lifecycle.NewOfferFields {
	return lifecycle.NewOfferFields{
		Matiere:     r.Matiere,
		Niveau:      r.Niveau,
		Description: r.Description,
		Adresse:     r.Adresse,
		Frequence:   r.Frequence,
		BudgetMin:   r.BudgetMin,
		BudgetMax:   r.BudgetMax,
	}
}

type UpdateOfferStatusRequest struct {
	Statut string `json:"statut" validate:"required,oneof=ouverte en_cours fermee"`
}

type OfferResponse struct {
	ID                uuid.UUID `json:"id"`
	ParentID          uuid.UUID `json:"parent_id"`
	ParentName        string    `json:"parent_name,omitempty"`
	Matiere           string    `json:"matiere"`
	Niveau            string    `json:"niveau"`
	Description       string    `json:"description"`
	Adresse           string    `json:"adresse"`
	Frequence         string    `json:"frequence"`
	BudgetMin         int       `json:"budget_min"`
	BudgetMax         int       `json:"budget_max"`
	Statut            string    `json:"statut"`
	ApplicationsCount int64     `json:"applications_count"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromModel(o *model.OfferModel) OfferResponse {
	return OfferResponse{
		ID:          o.ID,
		ParentID:    o.ParentID,
		Matiere:     o.Matiere,
		Niveau:      o.Niveau,
		Description: o.Description,
		Adresse:     o.Adresse,
		Frequence:   o.Frequence,
		BudgetMin:   o.BudgetMin,
		BudgetMax:   o.BudgetMax,
		Statut:      o.Statut,
		CreatedAt:   o.CreatedAt,
	}
}
