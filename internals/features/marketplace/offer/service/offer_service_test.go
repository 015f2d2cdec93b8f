package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	appModel "monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	"monrepetiteur_backend/internals/features/marketplace/offer/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.OfferModel{},
		&appModel.ApplicationModel{},
		&contractModel.ContractModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func validFields() lifecycle.NewOfferFields {
	return lifecycle.NewOfferFields{
		Matiere:     "Mathématiques",
		Niveau:      "3ème",
		Description: "Soutien scolaire deux fois par semaine",
		Adresse:     "Cocody, Abidjan",
		Frequence:   "2 fois par semaine",
		BudgetMin:   5000,
		BudgetMax:   10000,
	}
}

func TestCreateOffer(t *testing.T) {
	db := openTestDB(t)
	parent := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}

	offer, err := CreateOffer(db, parent, validFields())
	require.NoError(t, err)
	assert.Equal(t, model.StatusOuverte, offer.Statut)
	assert.Equal(t, parent.ID, offer.ParentID)
	assert.GreaterOrEqual(t, offer.BudgetMax, offer.BudgetMin)

	// invalid budgets never reach the store
	bad := validFields()
	bad.BudgetMax = 1000
	_, err = CreateOffer(db, parent, bad)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindValidation))

	var count int64
	require.NoError(t, db.Model(&model.OfferModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// tutors cannot create offers
	tutor := lifecycle.Actor{ID: uuid.New(), Role: constants.RolePrestataire}
	_, err = CreateOffer(db, tutor, validFields())
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))
}

func TestSetOfferStatus(t *testing.T) {
	db := openTestDB(t)
	parent := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	offer, err := CreateOffer(db, parent, validFields())
	require.NoError(t, err)

	// owner closes, then reopens
	updated, err := SetOfferStatus(db, parent, offer.ID, model.StatusFermee)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFermee, updated.Statut)

	updated, err = SetOfferStatus(db, parent, offer.ID, model.StatusOuverte)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOuverte, updated.Statut)

	// budget fields are untouched by status changes
	var reloaded model.OfferModel
	require.NoError(t, db.First(&reloaded, "id = ?", offer.ID).Error)
	assert.Equal(t, offer.BudgetMin, reloaded.BudgetMin)
	assert.Equal(t, offer.BudgetMax, reloaded.BudgetMax)
	assert.GreaterOrEqual(t, reloaded.BudgetMax, reloaded.BudgetMin)

	// a stranger parent is rejected
	stranger := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	_, err = SetOfferStatus(db, stranger, offer.ID, model.StatusFermee)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))

	// an admin is allowed
	admin := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleAdmin}
	updated, err = SetOfferStatus(db, admin, offer.ID, model.StatusEnCours)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnCours, updated.Statut)

	// unknown offer
	_, err = SetOfferStatus(db, parent, uuid.New(), model.StatusFermee)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindNotFound))
}

func TestDeleteOfferCascade(t *testing.T) {
	db := openTestDB(t)
	parent := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	admin := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleAdmin}

	offer, err := CreateOffer(db, parent, validFields())
	require.NoError(t, err)

	// two applications, one contract, referencing the offer
	tutorA, tutorB := uuid.New(), uuid.New()
	require.NoError(t, db.Create(&appModel.ApplicationModel{
		OfferID: offer.ID, TutorID: tutorA, Message: "Première candidature motivée", Statut: appModel.StatusAcceptee,
	}).Error)
	require.NoError(t, db.Create(&appModel.ApplicationModel{
		OfferID: offer.ID, TutorID: tutorB, Message: "Deuxième candidature motivée", Statut: appModel.StatusEnAttente,
	}).Error)
	require.NoError(t, db.Create(&contractModel.ContractModel{
		OfferID: offer.ID, ParentID: parent.ID, TutorID: tutorA,
		Matiere: offer.Matiere, Niveau: offer.Niveau, Frequence: offer.Frequence, Adresse: offer.Adresse,
		DateDebut: offer.CreatedAt, Statut: contractModel.StatusActif,
	}).Error)

	// a parent cannot cascade-delete
	_, err = DeleteOfferCascade(db, parent, offer.ID)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))

	report, err := DeleteOfferCascade(db, admin, offer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.ContractsDeleted)
	assert.EqualValues(t, 2, report.ApplicationsDeleted)
	assert.True(t, report.OfferDeleted)

	// post-condition: nothing references the deleted offer
	var n int64
	require.NoError(t, db.Model(&appModel.ApplicationModel{}).Where("offer_id = ?", offer.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&contractModel.ContractModel{}).Where("offer_id = ?", offer.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.OfferModel{}).Where("id = ?", offer.ID).Count(&n).Error)
	assert.Zero(t, n)

	// deleting again reports not found
	_, err = DeleteOfferCascade(db, admin, offer.ID)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindNotFound))
}
