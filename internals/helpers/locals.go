package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"monrepetiteur_backend/internals/constants"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
)

var ErrNoUserInContext = errors.New("no authenticated user in context")

// GetUserUUID reads the user id stored by the auth middleware.
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserInContext
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserInContext
	}
	return id, nil
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

func IsAdmin(c *fiber.Ctx) bool {
	role := GetUserRole(c)
	return role == constants.RoleAdmin || role == constants.RoleSuperAdmin
}

func IsSuperAdmin(c *fiber.Ctx) bool {
	return GetUserRole(c) == constants.RoleSuperAdmin
}

// GetActor bundles the authenticated user id and role for the
// lifecycle policy checks.
func GetActor(c *fiber.Ctx) (lifecycle.Actor, error) {
	id, err := GetUserUUID(c)
	if err != nil {
		return lifecycle.Actor{}, err
	}
	return lifecycle.Actor{ID: id, Role: GetUserRole(c)}, nil
}
