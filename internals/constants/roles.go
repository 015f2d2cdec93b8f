package constants

import "fmt"

// Role values stored on users.role.
const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleClient      = "client"      // parent
	RolePrestataire = "prestataire" // répétiteur (tutor)
)

// Role error message templates.
const (
	ErrOnlyAdminsCanAccess       = "❌ Seuls les administrateurs peuvent accéder à %s."
	ErrOnlySuperAdminCanAccess   = "❌ Seul le super administrateur peut accéder à %s."
	ErrOnlyClientsCanAccess      = "❌ Seuls les parents peuvent accéder à %s."
	ErrOnlyPrestatairesCanAccess = "❌ Seuls les répétiteurs peuvent accéder à %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminCanAccess, feature)
}

func RoleErrorClient(feature string) string {
	return fmt.Sprintf(ErrOnlyClientsCanAccess, feature)
}

func RoleErrorPrestataire(feature string) string {
	return fmt.Sprintf(ErrOnlyPrestatairesCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperAdmin,
		RoleAdmin,
		RoleClient,
		RolePrestataire,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}

	ClientOnly = []string{
		RoleClient,
	}

	PrestataireOnly = []string{
		RolePrestataire,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
