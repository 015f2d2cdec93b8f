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
	"monrepetiteur_backend/internals/features/marketplace/contract/model"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	notifModel "monrepetiteur_backend/internals/features/notifications/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.ContractModel{}, &notifModel.NotificationModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedContract(t *testing.T, db *gorm.DB, parent lifecycle.Actor) *model.ContractModel {
	t.Helper()
	contract := model.ContractModel{
		OfferID:   uuid.New(),
		ParentID:  parent.ID,
		TutorID:   uuid.New(),
		Matiere:   "Anglais",
		Niveau:    "Terminale",
		Frequence: "1 fois par semaine",
		Adresse:   "Yopougon, Abidjan",
		DateDebut: time.Now(),
		Statut:    model.StatusActif,
	}
	require.NoError(t, db.Create(&contract).Error)
	return &contract
}

func TestSetContractStatus_TermineStampsDateFin(t *testing.T) {
	db := openTestDB(t)
	parent := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	contract := seedContract(t, db, parent)

	updated, err := SetContractStatus(db, parent, contract.ID, model.StatusTermine)
	require.NoError(t, err)
	assert.Equal(t, model.StatusTermine, updated.Statut)
	require.NotNil(t, updated.DateFin)

	var reloaded model.ContractModel
	require.NoError(t, db.First(&reloaded, "id = ?", contract.ID).Error)
	assert.Equal(t, model.StatusTermine, reloaded.Statut)
	assert.NotNil(t, reloaded.DateFin)

	// the tutor was notified
	var n int64
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("recipient_id = ? AND kind = ?", contract.TutorID, notifModel.KindContratTermine).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSetContractStatus_ActifToActifIsNoOp(t *testing.T) {
	db := openTestDB(t)
	parent := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	contract := seedContract(t, db, parent)

	updated, err := SetContractStatus(db, parent, contract.ID, model.StatusActif)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActif, updated.Statut)
	assert.Nil(t, updated.DateFin)
}

func TestSetContractStatus_Guards(t *testing.T) {
	db := openTestDB(t)
	parent := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	contract := seedContract(t, db, parent)

	// the tutor cannot transition the contract
	tutor := lifecycle.Actor{ID: contract.TutorID, Role: constants.RolePrestataire}
	_, err := SetContractStatus(db, tutor, contract.ID, model.StatusTermine)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))

	// once cancelled, nothing else is legal
	_, err = SetContractStatus(db, parent, contract.ID, model.StatusAnnule)
	require.NoError(t, err)
	_, err = SetContractStatus(db, parent, contract.ID, model.StatusTermine)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindInvalidState))

	_, err = SetContractStatus(db, parent, uuid.New(), model.StatusTermine)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindNotFound))
}

func TestSetTarifConvenu(t *testing.T) {
	db := openTestDB(t)
	parent := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	contract := seedContract(t, db, parent)

	updated, err := SetTarifConvenu(db, parent, contract.ID, 7500)
	require.NoError(t, err)
	require.NotNil(t, updated.TarifConvenu)
	assert.Equal(t, 7500, *updated.TarifConvenu)

	_, err = SetTarifConvenu(db, parent, contract.ID, 0)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindValidation))

	stranger := lifecycle.Actor{ID: uuid.New(), Role: constants.RoleClient}
	_, err = SetTarifConvenu(db, stranger, contract.ID, 5000)
	assert.True(t, lifecycle.IsKind(err, lifecycle.KindPermissionDenied))
}
