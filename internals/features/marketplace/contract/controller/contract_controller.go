package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	"monrepetiteur_backend/internals/features/marketplace/contract/dto"
	"monrepetiteur_backend/internals/features/marketplace/contract/model"
	"monrepetiteur_backend/internals/features/marketplace/contract/service"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	helper "monrepetiteur_backend/internals/helpers"
)

type ContractController struct {
	DB *gorm.DB
}

func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{DB: db}
}

// ListMine returns the caller's contracts: by parent_id for a client,
// by tutor_id for a prestataire, with the counterpart's name.
func (cc *ContractController) ListMine(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := cc.DB.Model(&model.ContractModel{})
	switch actor.Role {
	case constants.RoleClient:
		q = q.Where("contracts.parent_id = ?", actor.ID)
	case constants.RolePrestataire:
		q = q.Where("contracts.tutor_id = ?", actor.ID)
	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Rôle non autorisé pour cette ressource")
	}
	if statut := c.Query("statut"); statut != "" {
		q = q.Where("contracts.statut = ?", statut)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les contrats")
	}

	type row struct {
		model.ContractModel
		ParentName string
		TutorName  string
	}
	var rows []row
	if err := q.
		Select("contracts.*, parents.full_name AS parent_name, tutors.full_name AS tutor_name").
		Joins("JOIN users parents ON parents.id = contracts.parent_id").
		Joins("JOIN users tutors ON tutors.id = contracts.tutor_id").
		Order("contracts.created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les contrats")
	}

	out := make([]dto.ContractResponse, 0, len(rows))
	for i := range rows {
		resp := dto.FromModel(&rows[i].ContractModel)
		resp.ParentName = rows[i].ParentName
		resp.TutorName = rows[i].TutorName
		out = append(out, resp)
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "", out, &pagination)
}

func (cc *ContractController) UpdateStatus(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.UpdateContractStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	contract, err := service.SetContractStatus(cc.DB, actor, contractID, req.Statut)
	if err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Statut du contrat mis à jour", dto.FromModel(contract))
}

func (cc *ContractController) UpdateTarif(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.UpdateContractTarifRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	contract, err := service.SetTarifConvenu(cc.DB, actor, contractID, req.TarifConvenu)
	if err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Tarif convenu mis à jour", dto.FromModel(contract))
}
