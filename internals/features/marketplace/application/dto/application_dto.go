package dto

import (
	"time"

	"github.com/google/uuid"

	"monrepetiteur_backend/internals/features/marketplace/application/model"
)

type SubmitApplicationRequest struct {
	OfferID string `json:"offer_id" validate:"required,uuid4"`
	Message string `json:"message" validate:"required,min=20,max=2000"`
}

type DecideApplicationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=acceptee refusee"`
}

type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	OfferID   uuid.UUID `json:"offer_id"`
	TutorID   uuid.UUID `json:"tutor_id"`
	TutorName string    `json:"tutor_name,omitempty"`
	Message   string    `json:"message"`
	Statut    string    `json:"statut"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(a *model.ApplicationModel) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		OfferID:   a.OfferID,
		TutorID:   a.TutorID,
		Message:   a.Message,
		Statut:    a.Statut,
		CreatedAt: a.CreatedAt,
	}
}
