package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
	"monrepetiteur_backend/internals/features/marketplace/lifecycle"
	"monrepetiteur_backend/internals/features/users/profile/dto"
	"monrepetiteur_backend/internals/features/users/profile/model"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
	helper "monrepetiteur_backend/internals/helpers"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

func (pc *ProfileController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	var profile model.TutorProfileModel
	if err := pc.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Profil introuvable")
	}
	return helper.JsonOK(c, "", dto.FromModel(&profile))
}

func validateCatalogs(req *dto.UpdateProfileRequest) map[string][]string {
	errs := map[string][]string{}
	for _, m := range req.Matieres {
		if !constants.InCatalog(constants.Matieres, m) {
			errs["Matieres"] = append(errs["Matieres"], "matière inconnue: "+m)
		}
	}
	for _, n := range req.Niveaux {
		if !constants.InCatalog(constants.Niveaux, n) {
			errs["Niveaux"] = append(errs["Niveaux"], "niveau inconnu: "+n)
		}
	}
	for _, d := range req.Disponibilites {
		if !constants.InCatalog(constants.Disponibilites, d) {
			errs["Disponibilites"] = append(errs["Disponibilites"], "disponibilité inconnue: "+d)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UpdateMine overwrites the declarative fields and recomputes the
// completeness flag in the same write. documents_valides is never
// touched here, only an admin can set it.
func (pc *ProfileController) UpdateMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if errs := validateCatalogs(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var profile model.TutorProfileModel
	if err := pc.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Profil introuvable")
	}

	profile.Bio = strings.TrimSpace(req.Bio)
	profile.Matieres = pq.StringArray(req.Matieres)
	profile.Niveaux = pq.StringArray(req.Niveaux)
	profile.Disponibilites = pq.StringArray(req.Disponibilites)
	profile.Localisation = strings.TrimSpace(req.Localisation)
	profile.TarifHoraire = req.TarifHoraire
	if req.ExperienceAnnees != nil {
		profile.ExperienceAnnees = *req.ExperienceAnnees
	}
	profile.ProfilComplet = lifecycle.ProfilComplet(&profile)

	if err := pc.DB.Save(&profile).Error; err != nil {
		log.Println("[ERROR] update profile:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de mettre à jour le profil")
	}
	return helper.JsonUpdated(c, "Profil mis à jour", dto.FromModel(&profile))
}

// AdminListTutors lists tutor profiles with the owner's name, newest
// first, filterable by ?documents_valides= and ?profil_complet=.
func (pc *ProfileController) AdminListTutors(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := pc.DB.Model(&model.TutorProfileModel{})
	if v := c.Query("documents_valides"); v != "" {
		q = q.Where("tutor_profiles.documents_valides = ?", v == "true")
	}
	if v := c.Query("profil_complet"); v != "" {
		q = q.Where("tutor_profiles.profil_complet = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les profils")
	}

	type row struct {
		model.TutorProfileModel
		FullName string
	}
	var rows []row
	if err := q.
		Select("tutor_profiles.*, users.full_name AS full_name").
		Joins("JOIN users ON users.id = tutor_profiles.user_id").
		Order("tutor_profiles.created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les profils")
	}

	out := make([]dto.ProfileResponse, 0, len(rows))
	for i := range rows {
		resp := dto.FromModel(&rows[i].TutorProfileModel)
		resp.FullName = rows[i].FullName
		out = append(out, resp)
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "", out, &pagination)
}

// AdminValidateDocuments flips the documents_valides gate for a tutor.
func (pc *ProfileController) AdminValidateDocuments(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}
	if err := lifecycle.CanValidateDocuments(actor); err != nil {
		return helper.JsonError(c, lifecycle.HTTPStatus(err), err.Error())
	}

	var req dto.ValidateDocumentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}

	var profile model.TutorProfileModel
	if err := pc.DB.Where("user_id = ?", c.Params("userId")).First(&profile).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Profil introuvable")
	}

	var owner userModel.UserModel
	if err := pc.DB.First(&owner, "id = ?", profile.UserID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur introuvable")
	}
	if owner.Role != constants.RolePrestataire {
		return helper.JsonError(c, fiber.StatusBadRequest, "Ce compte n'est pas un prestataire")
	}

	if err := pc.DB.Model(&profile).Update("documents_valides", req.DocumentsValides).Error; err != nil {
		log.Println("[ERROR] validate documents:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de mettre à jour la validation")
	}
	profile.DocumentsValides = req.DocumentsValides
	return helper.JsonUpdated(c, "Validation des documents mise à jour", dto.FromModel(&profile))
}
