// Package lifecycle holds the decision rules for the offer / application /
// contract life cycle. Every function here is pure: it looks at the states it
// is given and answers whether the operation is legal and what must change.
// Persistence is the caller's job.
package lifecycle

import (
	"strings"
	"time"
	"unicode/utf8"

	appModel "monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	offerModel "monrepetiteur_backend/internals/features/marketplace/offer/model"
	profileModel "monrepetiteur_backend/internals/features/users/profile/model"
)

const MinApplicationMessageLen = 20

const MinBioLen = 50

/* ==========================
   Offer
========================== */

// NewOfferFields is what a parent submits to open an offer.
type NewOfferFields struct {
	Matiere     string
	Niveau      string
	Description string
	Adresse     string
	Frequence   string
	BudgetMin   int
	BudgetMax   int
}

// ValidateNewOffer enforces the creation invariants: required fields present,
// positive budgets, budget_max >= budget_min.
func ValidateNewOffer(f NewOfferFields) error {
	if strings.TrimSpace(f.Matiere) == "" ||
		strings.TrimSpace(f.Niveau) == "" ||
		strings.TrimSpace(f.Description) == "" ||
		strings.TrimSpace(f.Adresse) == "" ||
		strings.TrimSpace(f.Frequence) == "" {
		return Validationf("tous les champs de l'offre sont obligatoires")
	}
	if f.BudgetMin <= 0 || f.BudgetMax <= 0 {
		return Validationf("les budgets doivent être positifs")
	}
	if f.BudgetMax < f.BudgetMin {
		return Validationf("le budget maximum doit être supérieur ou égal au budget minimum")
	}
	return nil
}

func CanCreateOffer(actor Actor) error {
	if !RoleAllows(actor.Role, ActionCreateOffer) {
		return PermissionDeniedf("seuls les parents peuvent publier une offre")
	}
	return nil
}

// CanSetOfferStatus: owning parent or an admin; every transition among the
// three statuses is allowed, including a manual reopen. Changing the status
// never touches the offer's applications.
func CanSetOfferStatus(actor Actor, offer *offerModel.OfferModel, newStatut string) error {
	if !offerModel.IsValidStatus(newStatut) {
		return Validationf("statut d'offre inconnu: %s", newStatut)
	}
	if !RoleAllows(actor.Role, ActionChangeOfferStatus) {
		return PermissionDeniedf("vous ne pouvez pas modifier le statut de cette offre")
	}
	if !actor.IsAdmin() && offer.ParentID != actor.ID {
		return PermissionDeniedf("seul le parent propriétaire peut modifier le statut de cette offre")
	}
	return nil
}

// CanDeleteOffer: admins only. The cascade (contracts, applications, offer)
// is persisted by the caller.
func CanDeleteOffer(actor Actor) error {
	if !RoleAllows(actor.Role, ActionDeleteOffer) {
		return PermissionDeniedf("seuls les administrateurs peuvent supprimer une offre")
	}
	return nil
}

/* ==========================
   Application
========================== */

// SubmitApplicationInput gathers the state the submission decision needs.
// AlreadyApplied is the caller's read of the (offer, tutor) uniqueness; the
// DB unique index is the final arbiter under concurrency.
type SubmitApplicationInput struct {
	Actor          Actor
	Profile        *profileModel.TutorProfileModel
	Offer          *offerModel.OfferModel
	AlreadyApplied bool
	Message        string
}

// CanSubmitApplication enforces, in order: role, documents_valides, offer
// open, no prior application, message length. Permission is checked before
// state so an unvalidated tutor always sees the validation problem first,
// whatever the offer status.
func CanSubmitApplication(in SubmitApplicationInput) error {
	if !RoleAllows(in.Actor.Role, ActionSubmitApplication) {
		return PermissionDeniedf("seuls les répétiteurs peuvent postuler à une offre")
	}
	if in.Profile == nil || !in.Profile.DocumentsValides {
		return PermissionDeniedf("vos documents doivent être validés par un administrateur avant de postuler")
	}
	if in.Offer.Statut != offerModel.StatusOuverte {
		return InvalidStatef("cette offre n'est plus ouverte aux candidatures")
	}
	if in.AlreadyApplied {
		return Conflictf("vous avez déjà postulé à cette offre")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Message)) < MinApplicationMessageLen {
		return Validationf("le message de présentation doit contenir au moins %d caractères", MinApplicationMessageLen)
	}
	return nil
}

// Decision values mirror the statuses they produce.
type Decision string

const (
	DecisionAccepter Decision = "acceptee"
	DecisionRefuser  Decision = "refusee"
)

// DecisionPlan is what accepting or rejecting implies. On accept, Contract
// is the single contract to create alongside the status change; on reject it
// is nil. Sibling applications are never part of the plan: each one is
// decided independently, and the offer status is left alone so several
// tutors can be engaged on one offer.
type DecisionPlan struct {
	NewStatut string
	Contract  *contractModel.ContractModel
}

// DecideApplication validates and plans a parent's accept/reject.
func DecideApplication(actor Actor, offer *offerModel.OfferModel, application *appModel.ApplicationModel, decision Decision, now time.Time) (*DecisionPlan, error) {
	if decision != DecisionAccepter && decision != DecisionRefuser {
		return nil, Validationf("décision inconnue: %s", decision)
	}
	if !RoleAllows(actor.Role, ActionDecideApplication) {
		return nil, PermissionDeniedf("seuls les parents peuvent traiter une candidature")
	}
	if offer.ParentID != actor.ID {
		return nil, PermissionDeniedf("seul le parent propriétaire de l'offre peut traiter cette candidature")
	}
	if application.OfferID != offer.ID {
		return nil, NotFoundf("cette candidature ne correspond pas à cette offre")
	}
	if application.Statut != appModel.StatusEnAttente {
		return nil, InvalidStatef("cette candidature a déjà été traitée")
	}

	plan := &DecisionPlan{NewStatut: string(decision)}
	if decision == DecisionAccepter {
		plan.Contract = &contractModel.ContractModel{
			OfferID:   offer.ID,
			ParentID:  offer.ParentID,
			TutorID:   application.TutorID,
			Matiere:   offer.Matiere,
			Niveau:    offer.Niveau,
			Frequence: offer.Frequence,
			Adresse:   offer.Adresse,
			DateDebut: now,
			Statut:    contractModel.StatusActif,
		}
	}
	return plan, nil
}

/* ==========================
   Contract
========================== */

// ContractStatusChange is the outcome of a legal contract transition.
type ContractStatusChange struct {
	// NoOp is true for actif -> actif.
	NoOp bool
	// StampDateFin is true when moving to termine/annule.
	StampDateFin bool
}

// CanSetContractStatus: owning parent only, only from actif. Moving to
// termine or annule stamps date_fin; actif -> actif is accepted as a no-op.
func CanSetContractStatus(actor Actor, contract *contractModel.ContractModel, newStatut string) (*ContractStatusChange, error) {
	if newStatut != contractModel.StatusActif &&
		newStatut != contractModel.StatusTermine &&
		newStatut != contractModel.StatusAnnule {
		return nil, Validationf("statut de contrat inconnu: %s", newStatut)
	}
	if !RoleAllows(actor.Role, ActionChangeContractStatus) {
		return nil, PermissionDeniedf("seuls les parents peuvent modifier un contrat")
	}
	if contract.ParentID != actor.ID {
		return nil, PermissionDeniedf("seul le parent propriétaire peut modifier ce contrat")
	}
	if contract.Statut != contractModel.StatusActif {
		return nil, InvalidStatef("seul un contrat actif peut changer de statut")
	}
	if newStatut == contractModel.StatusActif {
		return &ContractStatusChange{NoOp: true}, nil
	}
	return &ContractStatusChange{StampDateFin: true}, nil
}

/* ==========================
   Profile
========================== */

// ProfilComplet is the completeness predicate. It is recomputed from the
// profile fields on every read and save; the stored flag is never trusted on
// its own.
func ProfilComplet(p *profileModel.TutorProfileModel) bool {
	if p == nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(p.Bio)) >= MinBioLen &&
		len(p.Matieres) >= 1 &&
		len(p.Niveaux) >= 1 &&
		len(p.Disponibilites) >= 1 &&
		strings.TrimSpace(p.Localisation) != ""
}
