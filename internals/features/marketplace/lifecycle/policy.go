package lifecycle

import (
	"github.com/google/uuid"

	"monrepetiteur_backend/internals/constants"
)

// Actor is the authenticated account attempting an operation. It is always
// passed explicitly; nothing in this package reads ambient session state.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin || a.Role == constants.RoleSuperAdmin
}

// Action names every state-changing capability in the system.
type Action string

const (
	ActionCreateOffer          Action = "create_offer"
	ActionChangeOfferStatus    Action = "change_offer_status"
	ActionDeleteOffer          Action = "delete_offer"
	ActionSubmitApplication    Action = "submit_application"
	ActionDecideApplication    Action = "decide_application"
	ActionChangeContractStatus Action = "change_contract_status"
	ActionToggleUserActive     Action = "toggle_user_active"
	ActionChangeUserRole       Action = "change_user_role"
	ActionValidateDocuments    Action = "validate_documents"
)

// capabilities is the single role/action matrix. Ownership and target-role
// constraints are layered on top by the operation checks; this table only
// answers "may this role ever perform this action".
var capabilities = map[string]map[Action]bool{
	constants.RoleSuperAdmin: {
		ActionChangeOfferStatus: true,
		ActionDeleteOffer:       true,
		ActionToggleUserActive:  true,
		ActionChangeUserRole:    true,
		ActionValidateDocuments: true,
	},
	constants.RoleAdmin: {
		ActionChangeOfferStatus: true,
		ActionDeleteOffer:       true,
		ActionToggleUserActive:  true,
		ActionValidateDocuments: true,
	},
	constants.RoleClient: {
		ActionCreateOffer:          true,
		ActionChangeOfferStatus:    true, // own offers only
		ActionDecideApplication:    true, // own offers only
		ActionChangeContractStatus: true, // own contracts only
	},
	constants.RolePrestataire: {
		ActionSubmitApplication: true, // self, if documents_valides
	},
}

// RoleAllows consults the capability matrix.
func RoleAllows(role string, action Action) bool {
	caps, ok := capabilities[role]
	if !ok {
		return false
	}
	return caps[action]
}

// CanToggleUserActive: admins may deactivate anyone except a super_admin
// account; only a super_admin may act on a super_admin.
func CanToggleUserActive(actor Actor, targetRole string) error {
	if !RoleAllows(actor.Role, ActionToggleUserActive) {
		return PermissionDeniedf("seuls les administrateurs peuvent activer ou désactiver un compte")
	}
	if targetRole == constants.RoleSuperAdmin && actor.Role != constants.RoleSuperAdmin {
		return PermissionDeniedf("seul le super administrateur peut agir sur un compte super administrateur")
	}
	return nil
}

// CanChangeUserRole: super_admin only, and never a role escalation by anyone
// else.
func CanChangeUserRole(actor Actor, newRole string) error {
	if !RoleAllows(actor.Role, ActionChangeUserRole) {
		return PermissionDeniedf("seul le super administrateur peut modifier le rôle d'un compte")
	}
	if !constants.IsValidRole(newRole) {
		return Validationf("rôle inconnu: %s", newRole)
	}
	return nil
}

// CanValidateDocuments: admin or super_admin.
func CanValidateDocuments(actor Actor) error {
	if !RoleAllows(actor.Role, ActionValidateDocuments) {
		return PermissionDeniedf("seuls les administrateurs peuvent valider les documents d'un répétiteur")
	}
	return nil
}
