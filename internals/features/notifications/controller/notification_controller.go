package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/features/notifications/model"
	"monrepetiteur_backend/internals/features/notifications/service"
	helper "monrepetiteur_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ListMine returns the caller's notifications, unread first.
func (nc *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := nc.DB.Model(&model.NotificationModel{}).Where("recipient_id = ?", userID)
	if c.Query("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de compter les notifications")
	}

	var items []model.NotificationModel
	if err := q.Order("read ASC, created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de lister les notifications")
	}

	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(items))
	return helper.JsonList(c, "", items, &pagination)
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	if err := service.MarkRead(nc.DB, userID, notificationID); err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification introuvable")
	}
	return helper.JsonUpdated(c, "Notification lue", nil)
}
