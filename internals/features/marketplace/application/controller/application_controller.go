package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/marketplace/application/dto"
	"monrepetiteur_backend/internals/features/marketplace/application/model"
	"monrepetiteur_backend/internals/features/marketplace/application/service"
	contractDTO "monrepetiteur_backend/internals/features/marketplace/contract/dto"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	helper "monrepetiteur_backend/internals/helpers"
)

type ApplicationController struct {
	DB *gorm.DB
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{DB: db}
}

func (ac *ApplicationController) Submit(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'offre invalide")
	}

	app, err := service.SubmitApplication(ac.DB, actor, offerID, req.Message)
	if err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}
	return helper.JsonCreated(c, "Candidature envoyée", dto.FromModel(app))
}

// ListMine returns the tutor's applications, each with a summary of
// the offer it targets.
func (ac *ApplicationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ac.DB.Model(&model.ApplicationModel{}).Where("applications.tutor_id = ?", userID)
	if statut := c.Query("statut"); statut != "" {
		q = q.Where("applications.statut = ?", statut)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les candidatures")
	}

	type row struct {
		model.ApplicationModel
		Matiere     string
		Niveau      string
		OfferStatut string
	}
	var rows []row
	if err := q.
		Select("applications.*, offers.matiere AS matiere, offers.niveau AS niveau, offers.statut AS offer_statut").
		Joins("JOIN offers ON offers.id = applications.offer_id").
		Order("applications.created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les candidatures")
	}

	out := make([]fiber.Map, 0, len(rows))
	for i := range rows {
		out = append(out, fiber.Map{
			"application": dto.FromModel(&rows[i].ApplicationModel),
			"offer": fiber.Map{
				"id":      rows[i].OfferID,
				"matiere": rows[i].Matiere,
				"niveau":  rows[i].Niveau,
				"statut":  rows[i].OfferStatut,
			},
		})
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "", out, &pagination)
}

// Decide accepts or rejects a pending application. Accepting returns
// the contract spawned by the decision.
func (ac *ApplicationController) Decide(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.DecideApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	app, contract, err := service.DecideApplication(ac.DB, actor, applicationID, lifecycle.Decision(req.Decision))
	if err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}

	body := fiber.Map{"application": dto.FromModel(app)}
	if contract != nil {
		body["contract"] = contractDTO.FromModel(contract)
	}
	return helper.JsonUpdated(c, "Candidature "+req.Decision, body)
}
