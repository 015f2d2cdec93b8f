package dto

import (
	"time"

	"github.com/google/uuid"

	"monrepetiteur_backend/internals/features/users/profile/model"
)

type UpdateProfileRequest struct {
	Bio              string   `json:"bio" validate:"omitempty,max=2000"`
	Matieres         []string `json:"matieres" validate:"omitempty,dive,required"`
	Niveaux          []string `json:"niveaux" validate:"omitempty,dive,required"`
	Disponibilites   []string `json:"disponibilites" validate:"omitempty,dive,required"`
	Localisation     string   `json:"localisation" validate:"omitempty,max=255"`
	TarifHoraire     *int     `json:"tarif_horaire" validate:"omitempty,gte=1000,lte=100000"`
	ExperienceAnnees *int     `json:"experience_annees" validate:"omitempty,gte=0,lte=60"`
}

type ValidateDocumentsRequest struct {
	DocumentsValides bool `json:"documents_valides"`
}

type ProfileResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	FullName         string    `json:"full_name,omitempty"`
	Bio              string    `json:"bio"`
	Matieres         []string  `json:"matieres"`
	Niveaux          []string  `json:"niveaux"`
	Disponibilites   []string  `json:"disponibilites"`
	Localisation     string    `json:"localisation"`
	TarifHoraire     *int      `json:"tarif_horaire"`
	ExperienceAnnees int       `json:"experience_annees"`
	ProfilComplet    bool      `json:"profil_complet"`
	DocumentsValides bool      `json:"documents_valides"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromModel(p *model.TutorProfileModel) ProfileResponse {
	return ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Bio:              p.Bio,
		Matieres:         p.Matieres,
		Niveaux:          p.Niveaux,
		Disponibilites:   p.Disponibilites,
		Localisation:     p.Localisation,
		TarifHoraire:     p.TarifHoraire,
		ExperienceAnnees: p.ExperienceAnnees,
		ProfilComplet:    p.ProfilComplet,
		DocumentsValides: p.DocumentsValides,
		UpdatedAt:        p.UpdatedAt,
	}
}
