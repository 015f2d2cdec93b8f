package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	"monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	offerModel "monrepetiteur_backend/internals/features/marketplace/offer/model"
	notifModel "monrepetiteur_backend/internals/features/notifications/model"
	profileModel "monrepetiteur_backend/internals/features/users/profile/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&offerModel.OfferModel{},
		&model.ApplicationModel{},
		&contractModel.ContractModel{},
		&profileModel.TutorProfileModel{},
		&notifModel.NotificationModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedParent() lifecycle.Actor {
	return lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
}

func seedTutor(t *testing.T, db *gorm.DB, validated bool) lifecycle.Actor {
	t.Helper()
	actor := lifecycle.Actor{ID: uuid.New(), Role: constants.RolePrestataire}
	profile := profileModel.TutorProfileModel{
		UserID:           actor.ID,
		DocumentsValides: validated,
	}
	require.NoError(t, db.Create(&profile).Error)
	return actor
}

func seedOffer(t *testing.T, db *gorm.DB, parent lifecycle.Actor) *offerModel.OfferModel {
	t.Helper()
	offer := offerModel.OfferModel{
		ParentID:    parent.ID,
		Matiere:     "Mathématiques",
		Niveau:      "3ème",
		Description: "Soutien scolaire deux fois par semaine",
		Adresse:     "Cocody, Abidjan",
		Frequence:   "2 fois par semaine",
		BudgetMin:   5000,
		BudgetMax:   10000,
		Statut:      offerModel.StatusOuverte,
	}
	require.NoError(t, db.Create(&offer).Error)
	return &offer
}

const okMessage = "J'ai cinq ans d'expérience en mathématiques au collège."

func TestSubmitApplication_HappyPath(t *testing.T) {
	db := openTestDB(t)
	parent := seedParent()
	tutor := seedTutor(t, db, true)
	offer := seedOffer(t, db, parent)

	application, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnAttente, application.Statut)
	assert.Equal(t, tutor.ID, application.TutorID)

	// the parent got a notification
	var n int64
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("recipient_id = ? AND kind = ?", parent.ID, notifModel.KindApplicationRecue).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSubmitApplication_DocumentsNotValidated(t *testing.T) {
	db := openTestDB(t)
	tutor := seedTutor(t, db, false)
	offer := seedOffer(t, db, seedParent())

	_, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))

	var count int64
	require.NoError(t, db.Model(&model.ApplicationModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitApplication_OfferNotOpen(t *testing.T) {
	db := openTestDB(t)
	tutor := seedTutor(t, db, true)
	offer := seedOffer(t, db, seedParent())
	require.NoError(t, db.Model(offer).Update("statut", offerModel.StatusFermee).Error)

	_, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindInvalidState))
}

func TestSubmitApplication_DuplicateIsConflict(t *testing.T) {
	db := openTestDB(t)
	tutor := seedTutor(t, db, true)
	offer := seedOffer(t, db, seedParent())

	_, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.NoError(t, err)

	_, err = SubmitApplication(db, tutor, offer.ID, okMessage)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindConflict))

	// count unchanged
	var count int64
	require.NoError(t, db.Model(&model.ApplicationModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// and the unique index itself blocks a raw duplicate row
	dup := model.ApplicationModel{OfferID: offer.ID, TutorID: tutor.ID, Message: okMessage}
	assert.Error(t, db.Create(&dup).Error)
}

func TestSubmitApplication_UnknownOffer(t *testing.T) {
	db := openTestDB(t)
	tutor := seedTutor(t, db, true)

	_, err := SubmitApplication(db, tutor, uuid.New(), okMessage)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindNotFound))
}

func TestDecideApplication_AcceptCreatesOneContract(t *testing.T) {
	db := openTestDB(t)
	parent := seedParent()
	tutor := seedTutor(t, db, true)
	offer := seedOffer(t, db, parent)

	application, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.NoError(t, err)

	updated, contract, err := DecideApplication(db, parent, application.ID, lifecycle.DecisionAccepter)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAcceptee, updated.Statut)
	require.NotNil(t, contract)
	assert.Equal(t, contractModel.StatusActif, contract.Statut)
	assert.Equal(t, offer.Matiere, contract.Matiere)
	assert.False(t, contract.DateDebut.IsZero())

	var contractCount int64
	require.NoError(t, db.Model(&contractModel.ContractModel{}).Count(&contractCount).Error)
	assert.EqualValues(t, 1, contractCount)

	// the offer stays open: accepting is decoupled from offer status
	var reloaded offerModel.OfferModel
	require.NoError(t, db.First(&reloaded, "id = ?", offer.ID).Error)
	assert.Equal(t, offerModel.StatusOuverte, reloaded.Statut)
}

func TestDecideApplication_RejectCreatesNothing(t *testing.T) {
	db := openTestDB(t)
	parent := seedParent()
	tutor := seedTutor(t, db, true)
	offer := seedOffer(t, db, parent)

	application, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.NoError(t, err)

	updated, contract, err := DecideApplication(db, parent, application.ID, lifecycle.DecisionRefuser)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRefusee, updated.Statut)
	assert.Nil(t, contract)

	var contractCount int64
	require.NoError(t, db.Model(&contractModel.ContractModel{}).Count(&contractCount).Error)
	assert.Zero(t, contractCount)
}

func TestDecideApplication_TwiceIsInvalidState(t *testing.T) {
	db := openTestDB(t)
	parent := seedParent()
	tutor := seedTutor(t, db, true)
	offer := seedOffer(t, db, parent)

	application, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.NoError(t, err)

	_, _, err = DecideApplication(db, parent, application.ID, lifecycle.DecisionAccepter)
	require.NoError(t, err)

	_, _, err = DecideApplication(db, parent, application.ID, lifecycle.DecisionRefuser)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindInvalidState))

	// still exactly one contract
	var contractCount int64
	require.NoError(t, db.Model(&contractModel.ContractModel{}).Count(&contractCount).Error)
	assert.EqualValues(t, 1, contractCount)
}

func TestDecideApplication_OnlyOwningParent(t *testing.T) {
	db := openTestDB(t)
	parent := seedParent()
	tutor := seedTutor(t, db, true)
	offer := seedOffer(t, db, parent)

	application, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.NoError(t, err)

	_, _, err = DecideApplication(db, seedParent(), application.ID, lifecycle.DecisionAccepter)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))

	var reloaded model.ApplicationModel
	require.NoError(t, db.First(&reloaded, "id = ?", application.ID).Error)
	assert.Equal(t, model.StatusEnAttente, reloaded.Statut)
}

// TestMarketplaceScenario walks the full flow: offer posted, an unvalidated
// tutor bounced, documents validated, application accepted with one contract,
// and a second tutor still able to apply to the still-open offer.
func TestMarketplaceScenario(t *testing.T) {
	db := openTestDB(t)
	parent := seedParent()
	tutor := seedTutor(t, db, false)
	offer := seedOffer(t, db, parent)
	assert.Equal(t, offerModel.StatusOuverte, offer.Statut)

	// documents not validated yet
	_, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))

	// admin validates the documents
	require.NoError(t, db.Model(&profileModel.TutorProfileModel{}).
		Where("user_id = ?", tutor.ID).
		Update("documents_valides", true).Error)

	application, err := SubmitApplication(db, tutor, offer.ID, okMessage)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnAttente, application.Statut)

	var count int64
	require.NoError(t, db.Model(&model.ApplicationModel{}).Where("offer_id = ?", offer.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	updated, contract, err := DecideApplication(db, parent, application.ID, lifecycle.DecisionAccepter)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAcceptee, updated.Statut)
	require.NotNil(t, contract)
	assert.Equal(t, contractModel.StatusActif, contract.Statut)

	// a second tutor applies to the same still-open offer
	second := seedTutor(t, db, true)
	app2, err := SubmitApplication(db, second, offer.ID, "Professeur de mathématiques depuis dix ans, disponible le soir.")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnAttente, app2.Statut)

	// and the first decision did not touch it
	var reloaded model.ApplicationModel
	require.NoError(t, db.First(&reloaded, "id = ?", app2.ID).Error)
	assert.Equal(t, model.StatusEnAttente, reloaded.Statut)
}
