package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	offerModel "monrepetiteur_backend/internals/features/marketplace/offer/model"
	notifModel "monrepetiteur_backend/internals/features/notifications/model"
	notifService "monrepetiteur_backend/internals/features/notifications/service"
	profileModel "monrepetiteur_backend/internals/features/users/profile/model"
)

// SubmitApplication creates a tutor's application on an open offer. Rules in
// order: actor is a tutor with validated documents, offer is open, no prior
// application, message long enough. The (offer, tutor) unique index settles
// the concurrent-duplicate race.
func SubmitApplication(db *gorm.DB, actor lifecycle.Actor, offerID uuid.UUID, message string) (*model.ApplicationModel, error) {
	var offer offerModel.OfferModel
	if err := db.First(&offer, "id = ?", offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.NotFoundf("offre introuvable")
		}
		return nil, lifecycle.Unavailablef("lecture de l'offre impossible: %v", err)
	}

	var profile *profileModel.TutorProfileModel
	var p profileModel.TutorProfileModel
	if err := db.First(&p, "user_id = ?", actor.ID).Error; err == nil {
		profile = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lifecycle.Unavailablef("lecture du profil impossible: %v", err)
	}

	var prior int64
	if err := db.Model(&model.ApplicationModel{}).
		Where("offer_id = ? AND tutor_id = ?", offerID, actor.ID).
		Count(&prior).Error; err != nil {
		return nil, lifecycle.Unavailablef("vérification des candidatures impossible: %v", err)
	}

	if err := lifecycle.CanSubmitApplication(lifecycle.SubmitApplicationInput{
		Actor:          actor,
		Profile:        profile,
		Offer:          &offer,
		AlreadyApplied: prior > 0,
		Message:        message,
	}); err != nil {
		return nil, err
	}

	application := model.ApplicationModel{
		OfferID: offerID,
		TutorID: actor.ID,
		Message: message,
		Statut:  model.StatusEnAttente,
	}
	if err := db.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent submission
			return nil, lifecycle.Conflictf("vous avez déjà postulé à cette offre")
		}
		return nil, lifecycle.Unavailablef("la candidature n'a pas pu être enregistrée: %v", err)
	}

	notifService.Notify(db, offer.ParentID, notifModel.KindApplicationRecue,
		"Nouvelle candidature",
		"Un répétiteur a postulé à votre offre "+offer.Matiere+" – "+offer.Niveau,
		map[string]any{"offer_id": offer.ID, "application_id": application.ID})

	return &application, nil
}

// DecideApplication applies a parent's accept/reject. Accepting creates
// exactly one active contract in the same transaction; rejecting creates
// nothing. Sibling applications and the offer status are left untouched.
func DecideApplication(db *gorm.DB, actor lifecycle.Actor, applicationID uuid.UUID, decision lifecycle.Decision) (*model.ApplicationModel, *contractModel.ContractModel, error) {
	var application model.ApplicationModel
	if err := db.First(&application, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, lifecycle.NotFoundf("candidature introuvable")
		}
		return nil, nil, lifecycle.Unavailablef("lecture de la candidature impossible: %v", err)
	}

	var offer offerModel.OfferModel
	if err := db.First(&offer, "id = ?", application.OfferID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, lifecycle.NotFoundf("offre introuvable")
		}
		return nil, nil, lifecycle.Unavailablef("lecture de l'offre impossible: %v", err)
	}

	plan, err := lifecycle.DecideApplication(actor, &offer, &application, decision, time.Now())
	if err != nil {
		return nil, nil, err
	}

	var contract *contractModel.ContractModel
	err = db.Transaction(func(tx *gorm.DB) error {
		// guard on the current status so two concurrent decisions cannot
		// both go through
		res := tx.Model(&model.ApplicationModel{}).
			Where("id = ? AND statut = ?", application.ID, model.StatusEnAttente).
			Update("statut", plan.NewStatut)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return lifecycle.InvalidStatef("cette candidature a déjà été traitée")
		}

		if plan.Contract != nil {
			if err := tx.Create(plan.Contract).Error; err != nil {
				return err
			}
			contract = plan.Contract
		}
		return nil
	})
	if err != nil {
		if lifecycle.KindOf(err) != 0 {
			return nil, nil, err
		}
		return nil, nil, lifecycle.Unavailablef("la décision n'a pas pu être enregistrée: %v", err)
	}
	application.Statut = plan.NewStatut

	if decision == lifecycle.DecisionAccepter {
		notifService.Notify(db, application.TutorID, notifModel.KindApplicationAcceptee,
			"Candidature acceptée",
			"Votre candidature pour "+offer.Matiere+" – "+offer.Niveau+" a été acceptée",
			map[string]any{"offer_id": offer.ID, "application_id": application.ID, "contract_id": contract.ID})
	} else {
		notifService.Notify(db, application.TutorID, notifModel.KindApplicationRefusee,
			"Candidature refusée",
			"Votre candidature pour "+offer.Matiere+" – "+offer.Niveau+" a été refusée",
			map[string]any{"offer_id": offer.ID, "application_id": application.ID})
	}

	return &application, contract, nil
}
