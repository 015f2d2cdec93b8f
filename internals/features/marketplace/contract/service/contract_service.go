package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/contract/model"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	notifModel "monrepetiteur_backend/internals/features/notifications/model"
	notifService "monrepetiteur_backend/internals/features/notifications/service"
)

// SetContractStatus applies the owning parent's transition on an active
// contract. termine/annule stamp date_fin; actif -> actif is a no-op.
func SetContractStatus(db *gorm.DB, actor lifecycle.Actor, contractID uuid.UUID, newStatut string) (*model.ContractModel, error) {
	var contract model.ContractModel
	if err := db.First(&contract, "id = ?", contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.NotFoundf("contrat introuvable")
		}
		return nil, lifecycle.Unavailablef("lecture du contrat impossible: %v", err)
	}

	change, err := lifecycle.CanSetContractStatus(actor, &contract, newStatut)
	if err != nil {
		return nil, err
	}
	if change.NoOp {
		return &contract, nil
	}

	updates := map[string]any{"statut": newStatut}
	if change.StampDateFin {
		now := time.Now()
		updates["date_fin"] = &now
	}
	if err := db.Model(&contract).Updates(updates).Error; err != nil {
		return nil, lifecycle.Unavailablef("le contrat n'a pas pu être mis à jour: %v", err)
	}
	contract.Statut = newStatut
	if fin, ok := updates["date_fin"].(*time.Time); ok {
		contract.DateFin = fin
	}

	kind := notifModel.KindContratTermine
	label := "terminé"
	if newStatut == model.StatusAnnule {
		kind = notifModel.KindContratAnnule
		label = "annulé"
	}
	notifService.Notify(db, contract.TutorID, kind,
		"Contrat "+label,
		"Votre contrat "+contract.Matiere+" – "+contract.Niveau+" a été "+label,
		map[string]any{"contract_id": contract.ID})

	return &contract, nil
}

// SetTarifConvenu records the agreed hourly rate on an active contract.
func SetTarifConvenu(db *gorm.DB, actor lifecycle.Actor, contractID uuid.UUID, tarif int) (*model.ContractModel, error) {
	var contract model.ContractModel
	if err := db.First(&contract, "id = ?", contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.NotFoundf("contrat introuvable")
		}
		return nil, lifecycle.Unavailablef("lecture du contrat impossible: %v", err)
	}

	if !lifecycle.RoleAllows(actor.Role, lifecycle.ActionChangeContractStatus) || contract.ParentID != actor.ID {
		return nil, lifecycle.PermissionDeniedf("seul le parent propriétaire peut modifier ce contrat")
	}
	if contract.Statut != model.StatusActif {
		return nil, lifecycle.InvalidStatef("seul un contrat actif peut être modifié")
	}
	if tarif <= 0 {
		return nil, lifecycle.Validationf("le tarif convenu doit être positif")
	}

	if err := db.Model(&contract).Update("tarif_convenu", tarif).Error; err != nil {
		return nil, lifecycle.Unavailablef("le contrat n'a pas pu être mis à jour: %v", err)
	}
	contract.TarifConvenu = &tarif
	return &contract, nil
}
