package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	appModel "monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	offerModel "monrepetiteur_backend/internals/features/marketplace/offer/model"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
)

// All aggregates are recomputed from the tables on every call. Nothing here
// is cached or stored, so the numbers cannot drift from the entity state.

type AdminStats struct {
	TotalUsers          int64 `json:"total_users"`
	Prestataires        int64 `json:"prestataires"`
	Clients             int64 `json:"clients"`
	Admins              int64 `json:"admins"`
	TotalOffers         int64 `json:"total_offers"`
	OpenOffers          int64 `json:"open_offers"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
}

func ComputeAdminStats(db *gorm.DB) (*AdminStats, error) {
	s := &AdminStats{}
	if err := db.Model(&userModel.UserModel{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&userModel.UserModel{}).Where("role = ?", constants.RolePrestataire).Count(&s.Prestataires).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&userModel.UserModel{}).Where("role = ?", constants.RoleClient).Count(&s.Clients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&userModel.UserModel{}).Where("role IN ?", constants.AdminAndAbove).Count(&s.Admins).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&offerModel.OfferModel{}).Count(&s.TotalOffers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&offerModel.OfferModel{}).Where("statut = ?", offerModel.StatusOuverte).Count(&s.OpenOffers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&appModel.ApplicationModel{}).Count(&s.TotalApplications).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&appModel.ApplicationModel{}).Where("statut = ?", appModel.StatusEnAttente).Count(&s.PendingApplications).Error; err != nil {
		return nil, err
	}
	return s, nil
}

type ParentStats struct {
	TotalOffers          int64 `json:"total_offers"`
	OpenOffers           int64 `json:"open_offers"`
	ApplicationsReceived int64 `json:"applications_received"`
	PendingApplications  int64 `json:"pending_applications"`
	ActiveContracts      int64 `json:"active_contracts"`
}

func ComputeParentStats(db *gorm.DB, parentID uuid.UUID) (*ParentStats, error) {
	s := &ParentStats{}
	if err := db.Model(&offerModel.OfferModel{}).Where("parent_id = ?", parentID).Count(&s.TotalOffers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&offerModel.OfferModel{}).
		Where("parent_id = ? AND statut = ?", parentID, offerModel.StatusOuverte).
		Count(&s.OpenOffers).Error; err != nil {
		return nil, err
	}
	received := db.Model(&appModel.ApplicationModel{}).
		Joins("JOIN offers ON offers.id = applications.offer_id").
		Where("offers.parent_id = ?", parentID)
	if err := received.Count(&s.ApplicationsReceived).Error; err != nil {
		return nil, err
	}
	pending := db.Model(&appModel.ApplicationModel{}).
		Joins("JOIN offers ON offers.id = applications.offer_id").
		Where("offers.parent_id = ? AND applications.statut = ?", parentID, appModel.StatusEnAttente)
	if err := pending.Count(&s.PendingApplications).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&contractModel.ContractModel{}).
		Where("parent_id = ? AND statut = ?", parentID, contractModel.StatusActif).
		Count(&s.ActiveContracts).Error; err != nil {
		return nil, err
	}
	return s, nil
}

type TutorStats struct {
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	AcceptedApplications int64 `json:"accepted_applications"`
	ActiveContracts      int64 `json:"active_contracts"`
}

func ComputeTutorStats(db *gorm.DB, tutorID uuid.UUID) (*TutorStats, error) {
	s := &TutorStats{}
	if err := db.Model(&appModel.ApplicationModel{}).Where("tutor_id = ?", tutorID).Count(&s.TotalApplications).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&appModel.ApplicationModel{}).
		Where("tutor_id = ? AND statut = ?", tutorID, appModel.StatusEnAttente).
		Count(&s.PendingApplications).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&appModel.ApplicationModel{}).
		Where("tutor_id = ? AND statut = ?", tutorID, appModel.StatusAcceptee).
		Count(&s.AcceptedApplications).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&contractModel.ContractModel{}).
		Where("tutor_id = ? AND statut = ?", tutorID, contractModel.StatusActif).
		Count(&s.ActiveContracts).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// CountApplicationsPerOffer returns offer_id -> application count for the
// given offers (admin table and parent offer lists).
func CountApplicationsPerOffer(db *gorm.DB, offerIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(offerIDs))
	if len(offerIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		OfferID uuid.UUID
		N       int64
	}
	if err := db.Model(&appModel.ApplicationModel{}).
		Select("offer_id, COUNT(*) AS n").
		Where("offer_id IN ?", offerIDs).
		Group("offer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.OfferID] = r.N
	}
	return out, nil
}
