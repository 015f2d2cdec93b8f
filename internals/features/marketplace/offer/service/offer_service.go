package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appModel "monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	"monrepetiteur_backend/internals/features/marketplace/offer/model"
)

// CreateOffer validates and persists a parent's new offer (statut ouverte).
func CreateOffer(db *gorm.DB, actor lifecycle.Actor, fields lifecycle.NewOfferFields) (*model.OfferModel, error) {
	if err := lifecycle.CanCreateOffer(actor); err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateNewOffer(fields); err != nil {
		return nil, err
	}

	offer := model.OfferModel{
		ParentID:    actor.ID,
		Matiere:     fields.Matiere,
		Niveau:      fields.Niveau,
		Description: fields.Description,
		Adresse:     fields.Adresse,
		Frequence:   fields.Frequence,
		BudgetMin:   fields.BudgetMin,
		BudgetMax:   fields.BudgetMax,
		Statut:      model.StatusOuverte,
	}
	if err := db.Create(&offer).Error; err != nil {
		return nil, lifecycle.Unavailablef("l'offre n'a pas pu être enregistrée: %v", err)
	}
	return &offer, nil
}

// SetOfferStatus applies a manual status change by the owning parent or an
// admin. Budgets and applications are never touched here.
func SetOfferStatus(db *gorm.DB, actor lifecycle.Actor, offerID uuid.UUID, newStatut string) (*model.OfferModel, error) {
	var offer model.OfferModel
	if err := db.First(&offer, "id = ?", offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.NotFoundf("offre introuvable")
		}
		return nil, lifecycle.Unavailablef("lecture de l'offre impossible: %v", err)
	}

	if err := lifecycle.CanSetOfferStatus(actor, &offer, newStatut); err != nil {
		return nil, err
	}

	if err := db.Model(&offer).Update("statut", newStatut).Error; err != nil {
		return nil, lifecycle.Unavailablef("le statut n'a pas pu être mis à jour: %v", err)
	}
	offer.Statut = newStatut
	return &offer, nil
}

// CascadeReport tells the caller how far a cascade delete went. The three
// deletions run in one transaction, so a failure means nothing was applied;
// the report still names the failing step.
type CascadeReport struct {
	ContractsDeleted    int64 `json:"contracts_deleted"`
	ApplicationsDeleted int64 `json:"applications_deleted"`
	OfferDeleted        bool  `json:"offer_deleted"`
}

// DeleteOfferCascade removes the offer and every application and contract
// referencing it. Admin only; irreversible.
func DeleteOfferCascade(db *gorm.DB, actor lifecycle.Actor, offerID uuid.UUID) (*CascadeReport, error) {
	if err := lifecycle.CanDeleteOffer(actor); err != nil {
		return nil, err
	}

	var offer model.OfferModel
	if err := db.First(&offer, "id = ?", offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.NotFoundf("offre introuvable")
		}
		return nil, lifecycle.Unavailablef("lecture de l'offre impossible: %v", err)
	}

	report := CascadeReport{}
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("offer_id = ?", offerID).Delete(&contractModel.ContractModel{})
		if res.Error != nil {
			return fmt.Errorf("suppression des contrats: %w", res.Error)
		}
		report.ContractsDeleted = res.RowsAffected

		res = tx.Where("offer_id = ?", offerID).Delete(&appModel.ApplicationModel{})
		if res.Error != nil {
			return fmt.Errorf("suppression des candidatures: %w", res.Error)
		}
		report.ApplicationsDeleted = res.RowsAffected

		if err := tx.Delete(&offer).Error; err != nil {
			return fmt.Errorf("suppression de l'offre: %w", err)
		}
		report.OfferDeleted = true
		return nil
	})
	if err != nil {
		// the transaction rolled back: nothing was applied, and the error
		// names the step that failed
		return nil, lifecycle.Unavailablef(
			"suppression annulée (%v). contrats: %d, candidatures: %d, offre supprimée: %t. aucune suppression appliquée",
			err, report.ContractsDeleted, report.ApplicationsDeleted, report.OfferDeleted)
	}
	return &report, nil
}
