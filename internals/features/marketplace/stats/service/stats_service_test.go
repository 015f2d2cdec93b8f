package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	appModel "monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	offerModel "monrepetiteur_backend/internals/features/marketplace/offer/model"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&offerModel.OfferModel{},
		&appModel.ApplicationModel{},
		&contractModel.ContractModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role, phone string) *userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		FullName: "Test " + role,
		Phone:    phone,
		Email:    phone + "@monrepetiteur.local",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func TestComputeAdminStats(t *testing.T) {
	db := openTestDB(t)

	parent := seedUser(t, db, constants.RoleClient, "+2250701020304")
	tutor := seedUser(t, db, constants.RolePrestataire, "+2250701020305")
	seedUser(t, db, constants.RolePrestataire, "+2250701020306")
	seedUser(t, db, constants.RoleAdmin, "+2250701020307")
	seedUser(t, db, constants.RoleSuperAdmin, "+2250701020308")

	open := offerModel.OfferModel{
		ParentID: parent.ID, Matiere: "SVT", Niveau: "1ère", Description: "d",
		Adresse: "a", Frequence: "f", BudgetMin: 1000, BudgetMax: 2000,
		Statut: offerModel.StatusOuverte,
	}
	require.NoError(t, db.Create(&open).Error)
	closed := open
	closed.ID = uuid.Nil
	closed.Statut = offerModel.StatusFermee
	require.NoError(t, db.Create(&closed).Error)

	require.NoError(t, db.Create(&appModel.ApplicationModel{
		OfferID: open.ID, TutorID: tutor.ID, Message: "Message de présentation complet", Statut: appModel.StatusEnAttente,
	}).Error)

	stats, err := ComputeAdminStats(db)
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.Prestataires)
	assert.EqualValues(t, 1, stats.Clients)
	assert.EqualValues(t, 2, stats.Admins)
	assert.EqualValues(t, 2, stats.TotalOffers)
	assert.EqualValues(t, 1, stats.OpenOffers)
	assert.EqualValues(t, 1, stats.TotalApplications)
	assert.EqualValues(t, 1, stats.PendingApplications)
}

func TestParentAndTutorStats(t *testing.T) {
	db := openTestDB(t)
	parent := seedUser(t, db, constants.RoleClient, "+2250701020310")
	tutor := seedUser(t, db, constants.RolePrestataire, "+2250701020311")

	offer := offerModel.OfferModel{
		ParentID: parent.ID, Matiere: "Anglais", Niveau: "6ème", Description: "d",
		Adresse: "a", Frequence: "f", BudgetMin: 1000, BudgetMax: 2000,
		Statut: offerModel.StatusOuverte,
	}
	require.NoError(t, db.Create(&offer).Error)

	require.NoError(t, db.Create(&appModel.ApplicationModel{
		OfferID: offer.ID, TutorID: tutor.ID, Message: "Message de présentation complet", Statut: appModel.StatusAcceptee,
	}).Error)
	require.NoError(t, db.Create(&contractModel.ContractModel{
		OfferID: offer.ID, ParentID: parent.ID, TutorID: tutor.ID,
		Matiere: offer.Matiere, Niveau: offer.Niveau, Frequence: offer.Frequence, Adresse: offer.Adresse,
		DateDebut: time.Now(), Statut: contractModel.StatusActif,
	}).Error)

	ps, err := ComputeParentStats(db, parent.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, ps.TotalOffers)
	assert.EqualValues(t, 1, ps.OpenOffers)
	assert.EqualValues(t, 1, ps.ApplicationsReceived)
	assert.EqualValues(t, 0, ps.PendingApplications)
	assert.EqualValues(t, 1, ps.ActiveContracts)

	ts, err := ComputeTutorStats(db, tutor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, ts.TotalApplications)
	assert.EqualValues(t, 0, ts.PendingApplications)
	assert.EqualValues(t, 1, ts.AcceptedApplications)
	assert.EqualValues(t, 1, ts.ActiveContracts)

	// a stranger sees zeros
	ps, err = ComputeParentStats(db, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, ps.TotalOffers)
	assert.Zero(t, ps.ApplicationsReceived)
}

func TestCountApplicationsPerOffer(t *testing.T) {
	db := openTestDB(t)
	parent := seedUser(t, db, constants.RoleClient, "+2250701020320")

	mk := func() offerModel.OfferModel {
		o := offerModel.OfferModel{
			ParentID: parent.ID, Matiere: "Physique-Chimie", Niveau: "2nde", Description: "d",
			Adresse: "a", Frequence: "f", BudgetMin: 1000, BudgetMax: 2000,
			Statut: offerModel.StatusOuverte,
		}
		require.NoError(t, db.Create(&o).Error)
		return o
	}
	o1, o2, o3 := mk(), mk(), mk()

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&appModel.ApplicationModel{
			OfferID: o1.ID, TutorID: uuid.New(), Message: "Message de présentation complet",
		}).Error)
	}
	require.NoError(t, db.Create(&appModel.ApplicationModel{
		OfferID: o2.ID, TutorID: uuid.New(), Message: "Message de présentation complet",
	}).Error)

	counts, err := CountApplicationsPerOffer(db, []uuid.UUID{o1.ID, o2.ID, o3.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[o1.ID])
	assert.EqualValues(t, 1, counts[o2.ID])
	assert.EqualValues(t, 0, counts[o3.ID])

	counts, err = CountApplicationsPerOffer(db, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
