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

// SubmitRecceRequest carries the measured photos of a recce. Photo files are
// uploaded beforehand; the body references their URLs.
type SubmitRecceRequest struct {
	InitialPhotos []string            `json:"initial_photos"`
	Photos        []models.ReccePhoto `json:"photos"`
	Notes         string              `json:"notes"`
}

// SubmitRecceController accepts a field user's recce submission. Only the
// assigned user may submit, and only from RECCE_ASSIGNED.
func (sc *StoreController) SubmitRecceController(c *fiber.Ctx) error {
	var req SubmitRecceRequest
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
	if workflow.RecceAssignedTo == nil || (workflow.RecceAssignedTo.ID != currentUser.ID && !currentUser.IsSuperAdmin()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Only the assigned field user can submit this recce",
			"error":   "not_assignee",
		})
	}

	if err := services.ValidateRecceSubmission(req.Photos); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "error": "invalid_submission"})
	}

	fromStatus := store.CurrentStatus
	if err := services.ApplyAction(store, services.ActionSubmitRecce); err != nil {
		var invalid *services.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": invalid.Error(), "error": "invalid_transition"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to apply workflow action", "error": err.Error()})
	}

	now := utils.Today()
	recce := store.Recce.Data()
	recce.InitialPhotos = req.InitialPhotos
	recce.Photos = req.Photos
	recce.Notes = req.Notes
	recce.SubmittedDate = &now
	recce.SubmittedBy = userRefOf(currentUser)
	store.Recce = datatypes.NewJSONType(recce)

	updatedBy := currentUser.Email
	store.UpdatedBy = &updatedBy

	updated, err := sc.StoreRepo.UpdateStore(store)
	if err != nil {
		config.Logger.Error("Failed to save recce submission", zap.String("store_id", store.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save recce submission", "error": err.Error()})
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
		"message": "Recce submitted for review",
		"data":    updated,
	})
}
