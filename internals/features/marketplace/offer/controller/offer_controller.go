package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appDTO "monrepetiteur_backend/internals/features/marketplace/application/dto"
	appModel "monrepetiteur_backend/internals/features/marketplace/application/model"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	"monrepetiteur_backend/internals/features/marketplace/offer/dto"
	"monrepetiteur_backend/internals/features/marketplace/offer/model"
	"monrepetiteur_backend/internals/features/marketplace/offer/service"
	statsService "monrepetiteur_backend/internals/features/marketplace/stats/service"
	helper "monrepetiteur_backend/internals/helpers"
)

type OfferController struct {
	DB *gorm.DB
}

func NewOfferController(db *gorm.DB) *OfferController {
	return &OfferController{DB: db}
}

func (oc *OfferController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	var req dto.CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	offer, err := service.CreateOffer(oc.DB, actor, req.Fields())
	if err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}
	return helper.JsonCreated(c, "Offre publiée", dto.FromModel(offer))
}

func withCounts(db *gorm.DB, offers []model.OfferModel) ([]dto.OfferResponse, error) {
	ids := make([]uuid.UUID, 0, len(offers))
	for i := range offers {
		ids = append(ids, offers[i].ID)
	}
	counts, err := statsService.CountApplicationsPerOffer(db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		resp := dto.FromModel(&offers[i])
		resp.ApplicationsCount = counts[offers[i].ID]
		out = append(out, resp)
	}
	return out, nil
}

// ListMine returns the parent's own offers with application counts.
func (oc *OfferController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := oc.DB.Model(&model.OfferModel{}).Where("parent_id = ?", userID)
	if statut := c.Query("statut"); statut != "" {
		q = q.Where("statut = ?", statut)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les offres")
	}

	var offers []model.OfferModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&offers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les offres")
	}

	out, err := withCounts(oc.DB, offers)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les candidatures")
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "", out, &pagination)
}

// Browse lists open offers for tutors, filterable by matiere, niveau
// and a free-text search on the description.
func (oc *OfferController) Browse(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := oc.DB.Model(&model.OfferModel{}).Where("statut = ?", model.StatusOuverte)
	if m := strings.TrimSpace(c.Query("matiere")); m != "" {
		q = q.Where("matiere = ?", m)
	}
	if n := strings.TrimSpace(c.Query("niveau")); n != "" {
		q = q.Where("niveau = ?", n)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("description ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les offres")
	}

	var offers []model.OfferModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&offers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les offres")
	}

	out := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, dto.FromModel(&offers[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "", out, &pagination)
}

// Detail returns one offer. The owning parent (or an admin) also gets
// the received applications, with each tutor's name; anyone else only
// sees the offer itself.
func (oc *OfferController) Detail(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var offer model.OfferModel
	if err := oc.DB.First(&offer, "id = ?", offerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Offre introuvable")
	}

	resp := dto.FromModel(&offer)
	body := fiber.Map{"offer": resp}

	if offer.ParentID == actor.ID || actor.IsAdmin() {
		type appRow struct {
			appModel.ApplicationModel
			FullName string
		}
		var rows []appRow
		if err := oc.DB.Model(&appModel.ApplicationModel{}).
			Select("applications.*, users.full_name AS full_name").
			Joins("JOIN users ON users.id = applications.tutor_id").
			Where("applications.offer_id = ?", offer.ID).
			Order("applications.created_at ASC").
			Scan(&rows).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les candidatures")
		}
		apps := make([]appDTO.ApplicationResponse, 0, len(rows))
		for i := range rows {
			a := appDTO.FromModel(&rows[i].ApplicationModel)
			a.TutorName = rows[i].FullName
			apps = append(apps, a)
		}
		body["applications"] = apps
	}

	return helper.JsonOK(c, "", body)
}

func (oc *OfferController) UpdateStatus(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.UpdateOfferStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	offer, err := service.SetOfferStatus(oc.DB, actor, offerID, req.Statut)
	if err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Statut de l'offre mis à jour", dto.FromModel(offer))
}

// AdminList returns every offer with the parent's name.
func (oc *OfferController) AdminList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := oc.DB.Model(&model.OfferModel{})
	if statut := c.Query("statut"); statut != "" {
		q = q.Where("offers.statut = ?", statut)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les offres")
	}

	type row struct {
		model.OfferModel
		FullName string
	}
	var rows []row
	if err := q.
		Select("offers.*, users.full_name AS full_name").
		Joins("JOIN users ON users.id = offers.parent_id").
		Order("offers.created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les offres")
	}

	offers := make([]model.OfferModel, 0, len(rows))
	for i := range rows {
		offers = append(offers, rows[i].OfferModel)
	}
	out, err := withCounts(oc.DB, offers)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les candidatures")
	}
	for i := range out {
		out[i].ParentName = rows[i].FullName
	}

	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "", out, &pagination)
}

// AdminDelete removes an offer and everything hanging off it.
func (oc *OfferController) AdminDelete(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	report, err := service.DeleteOfferCascade(oc.DB, actor, offerID)
	if err != nil {
		log.Println("[ERROR] cascade delete offer:", err)
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}
	return helper.JsonDeleted(c, "Offre supprimée", report)
}
