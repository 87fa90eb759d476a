package controllers

import (
	"errors"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/stores/services"
	"signops-backend/utils"
	"signops-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// SubmitInstallationRequest carries the completion photos, one per approved
// recce photo, addressed by recce_photo_index.
type SubmitInstallationRequest struct {
	Photos []models.InstallationPhoto `json:"photos"`
}

// SubmitInstallationController accepts a field user's installation submission.
func (sc *StoreController) SubmitInstallationController(c *fiber.Ctx) error {
	var req SubmitInstallationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	store, err := sc.loadStoreOr404(c)
	if err != nil {
		return err
	}

	workflow := store.Workflow.Data()
	if workflow.InstallationAssignedTo == nil || (workflow.InstallationAssignedTo.ID != currentUser.ID && !currentUser.IsSuperAdmin()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Only the assigned field user can submit this installation",
			"error":   "not_assignee",
		})
	}

	reccePhotoCount := len(store.Recce.Data().Photos)
	if err := services.ValidateInstallationSubmission(req.Photos, reccePhotoCount); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "error": "invalid_submission"})
	}

	fromStatus := store.CurrentStatus
	if err := services.ApplyAction(store, services.ActionSubmitInstallation); err != nil {
		var invalid *services.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": invalid.Error(), "error": "invalid_transition"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to apply workflow action", "error": err.Error()})
	}

	now := utils.Today()
	installation := store.Installation.Data()
	installation.Photos = req.Photos
	installation.SubmittedDate = &now
	installation.SubmittedBy = userRefOf(currentUser)
	store.Installation = datatypes.NewJSONType(installation)

	updatedBy := currentUser.Email
	store.UpdatedBy = &updatedBy

	updated, err := sc.StoreRepo.UpdateStore(store)
	if err != nil {
		config.Logger.Error("Failed to save installation submission", zap.String("store_id", store.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save installation submission", "error": err.Error()})
	}

	sc.afterStoreMutation(updated)
	sc.Hub.BroadcastStoreStatus(websocket.StoreStatusPayload{
		StoreID:    updated.ID,
		StoreCode:  updated.StoreCode,
		FromStatus: string(fromStatus),
		ToStatus:   string(updated.CurrentStatus),
		ChangedBy:  currentUser.Email,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Installation submitted for review",
		"data":    updated,
	})
}
