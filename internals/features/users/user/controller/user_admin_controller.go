package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	"monrepetiteur_backend/internals/features/users/user/dto"
	"monrepetiteur_backend/internals/features/users/user/model"
	helper "monrepetiteur_backend/internals/helpers"
)

type UserAdminController struct {
	DB *gorm.DB
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db}
}

// List returns users paginated, filterable by ?role= and ?q= (name or
// phone substring).
func (uc *UserAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := uc.DB.Model(&model.UserModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les utilisateurs")
	}

	var users []model.UserModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les utilisateurs")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.FromModel(&users[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "", out, &pagination)
}

// ToggleActive enables or disables an account. An admin cannot touch a
// super_admin account.
func (uc *UserAdminController) ToggleActive(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.ToggleActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}

	var target model.UserModel
	if err := uc.DB.First(&target, "id = ?", targetID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur introuvable")
	}

	if err := lifecycle.CanToggleUserActive(actor, target.Role); err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}

	if err := uc.DB.Model(&target).Update("is_active", req.IsActive).Error; err != nil {
		log.Println("[ERROR] toggle active:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de mettre à jour le compte")
	}
	target.IsActive = req.IsActive
	return helper.JsonUpdated(c, "Statut du compte mis à jour", dto.FromModel(&target))
}

// ChangeRole is super_admin only.
func (uc *UserAdminController) ChangeRole(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if err := lifecycle.CanChangeUserRole(actor, req.Role); err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}

	var target model.UserModel
	if err := uc.DB.First(&target, "id = ?", targetID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur introuvable")
	}

	if err := uc.DB.Model(&target).Update("role", req.Role).Error; err != nil {
		log.Println("[ERROR] change role:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de modifier le rôle")
	}
	target.Role = req.Role
	return helper.JsonUpdated(c, "Rôle mis à jour", dto.FromModel(&target))
}
