package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bytedance/sonic"

	"monrepetiteur_backend/internals/features/users/profile/model"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
	helper "monrepetiteur_backend/internals/helpers"
)

const documentBucket = "documents"

type DocumentController struct {
	DB *gorm.DB
}

func NewDocumentController(db *gorm.DB) *DocumentController {
	return &DocumentController{DB: db}
}

// Upload stores a document image for the authenticated tutor. The kind
// comes from the URL (avatar, cni_recto, cni_verso, diplome); images
// are recompressed to WebP before leaving the process. Re-uploading a
// kind replaces the previous document.
func (dc *DocumentController) Upload(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	kind := c.Params("kind")
	if !model.IsValidDocumentKind(kind) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Type de document inconnu")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fichier manquant (champ 'file')")
	}

	converted, err := helper.ConvertImageToWebP(fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	filename := helper.GenerateUniqueFilename(userID.String()+"/"+kind, fileHeader.Filename)
	url, err := helper.UploadToSupabase(documentBucket, filename, "image/webp", converted)
	if err != nil {
		log.Println("[ERROR] upload document:", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Le stockage de fichiers est indisponible")
	}

	meta, _ := sonic.Marshal(fiber.Map{
		"original_name": fileHeader.Filename,
		"original_size": fileHeader.Size,
		"stored_size":   converted.Len(),
	})

	doc := model.TutorDocumentModel{
		UserID:   userID,
		Kind:     kind,
		URL:      url,
		Metadata: datatypes.JSON(meta),
	}
	err = dc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "metadata", "uploaded_at"}),
	}).Create(&doc).Error
	if err != nil {
		log.Println("[ERROR] save document:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible d'enregistrer le document")
	}

	if kind == model.DocumentAvatar {
		if err := dc.DB.Model(&userModel.UserModel{}).
			Where("id = ?", userID).
			Update("avatar_url", url).Error; err != nil {
			log.Println("[WARN] update avatar url:", err)
		}
	}

	return helper.JsonCreated(c, "Document enregistré", doc)
}

func (dc *DocumentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	var docs []model.TutorDocumentModel
	if err := dc.DB.Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&docs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les documents")
	}
	return helper.JsonOK(c, "", docs)
}

// AdminListForUser lets a moderator review a tutor's documents before
// flipping documents_valides.
func (dc *DocumentController) AdminListForUser(c *fiber.Ctx) error {
	var docs []model.TutorDocumentModel
	if err := dc.DB.Where("user_id = ?", c.Params("userId")).
		Order("uploaded_at DESC").
		Find(&docs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les documents")
	}
	return helper.JsonOK(c, "", docs)
}
