package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"monrepetiteur_backend/internals/constants"
)

// TestCapabilityMatrix pins the (role, action) table down cell by cell.
func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		role    string
		action  Action
		allowed bool
	}{
		{constants.RoleClient, ActionCreateOffer, true},
		{constants.RolePrestataire, ActionCreateOffer, false},
		{constants.RoleAdmin, ActionCreateOffer, false},
		{constants.RoleSuperAdmin, ActionCreateOffer, false},

		{constants.RoleClient, ActionChangeOfferStatus, true},
		{constants.RoleAdmin, ActionChangeOfferStatus, true},
		{constants.RoleSuperAdmin, ActionChangeOfferStatus, true},
		{constants.RolePrestataire, ActionChangeOfferStatus, false},

		{constants.RoleAdmin, ActionDeleteOffer, true},
		{constants.RoleSuperAdmin, ActionDeleteOffer, true},
		{constants.RoleClient, ActionDeleteOffer, false},
		{constants.RolePrestataire, ActionDeleteOffer, false},

		{constants.RolePrestataire, ActionSubmitApplication, true},
		{constants.RoleClient, ActionSubmitApplication, false},
		{constants.RoleAdmin, ActionSubmitApplication, false},

		{constants.RoleClient, ActionDecideApplication, true},
		{constants.RoleAdmin, ActionDecideApplication, false},
		{constants.RoleSuperAdmin, ActionDecideApplication, false},
		{constants.RolePrestataire, ActionDecideApplication, false},

		{constants.RoleClient, ActionChangeContractStatus, true},
		{constants.RolePrestataire, ActionChangeContractStatus, false},
		{constants.RoleAdmin, ActionChangeContractStatus, false},

		{constants.RoleAdmin, ActionToggleUserActive, true},
		{constants.RoleSuperAdmin, ActionToggleUserActive, true},
		{constants.RoleClient, ActionToggleUserActive, false},

		{constants.RoleSuperAdmin, ActionChangeUserRole, true},
		{constants.RoleAdmin, ActionChangeUserRole, false},

		{constants.RoleAdmin, ActionValidateDocuments, true},
		{constants.RoleSuperAdmin, ActionValidateDocuments, true},
		{constants.RoleClient, ActionValidateDocuments, false},
		{constants.RolePrestataire, ActionValidateDocuments, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, RoleAllows(tc.role, tc.action),
			"role=%s action=%s", tc.role, tc.action)
	}

	// unknown role has no capabilities
	assert.False(t, RoleAllows("visiteur", ActionCreateOffer))
}

func TestCanToggleUserActive(t *testing.T) {
	admin := Actor{ID: uuid.New(), Role: constants.RoleAdmin}
	superAdmin := Actor{ID: uuid.New(), Role: constants.RoleSuperAdmin}
	parent := Actor{ID: uuid.New(), Role: constants.RoleClient}

	assert.NoError(t, CanToggleUserActive(admin, constants.RoleClient))
	assert.NoError(t, CanToggleUserActive(admin, constants.RolePrestataire))
	assert.NoError(t, CanToggleUserActive(admin, constants.RoleAdmin))

	// an admin may not act on a super_admin account
	err := CanToggleUserActive(admin, constants.RoleSuperAdmin)
	assert.True(t, IsKind(err, KindPermissionDenied))

	// a super_admin may
	assert.NoError(t, CanToggleUserActive(superAdmin, constants.RoleSuperAdmin))

	// non-admins may not toggle anyone
	err = CanToggleUserActive(parent, constants.RoleClient)
	assert.True(t, IsKind(err, KindPermissionDenied))
}

func TestCanChangeUserRole(t *testing.T) {
	admin := Actor{ID: uuid.New(), Role: constants.RoleAdmin}
	superAdmin := Actor{ID: uuid.New(), Role: constants.RoleSuperAdmin}

	assert.NoError(t, CanChangeUserRole(superAdmin, constants.RoleAdmin))
	assert.NoError(t, CanChangeUserRole(superAdmin, constants.RoleClient))

	err := CanChangeUserRole(admin, constants.RoleAdmin)
	assert.True(t, IsKind(err, KindPermissionDenied))

	err = CanChangeUserRole(superAdmin, "professeur")
	assert.True(t, IsKind(err, KindValidation))
}

func TestCanValidateDocuments(t *testing.T) {
	assert.NoError(t, CanValidateDocuments(Actor{ID: uuid.New(), Role: constants.RoleAdmin}))
	assert.NoError(t, CanValidateDocuments(Actor{ID: uuid.New(), Role: constants.RoleSuperAdmin}))

	err := CanValidateDocuments(Actor{ID: uuid.New(), Role: constants.RolePrestataire})
	assert.True(t, IsKind(err, KindPermissionDenied))
}
