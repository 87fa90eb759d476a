package controllers

import (
	"errors"
	"fmt"

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

// AssignRequest is the shared body for both assignment endpoints.
type AssignRequest struct {
	AssigneeID string `json:"assignee_id"`
	Priority   string `json:"priority"`
}

// AssignRecceController assigns a field user to carry out the recce. Legal
// from UPLOADED and from RECCE_REJECTED (reassignment after rejection).
func (sc *StoreController) AssignRecceController(c *fiber.Ctx) error {
	return sc.assign(c, services.ActionAssignRecce)
}

// AssignInstallationController assigns a field user to carry out the
// installation. Legal from RECCE_APPROVED and from INSTALLATION_REJECTED.
func (sc *StoreController) AssignInstallationController(c *fiber.Ctx) error {
	return sc.assign(c, services.ActionAssignInstallation)
}

func (sc *StoreController) assign(c *fiber.Ctx, action services.WorkflowAction) error {
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if req.AssigneeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "assignee_id is required", "error": "missing_assignee_id"})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	store, err := sc.loadStoreOr404(c)
	if err != nil {
		return err
	}

	assignee, err := sc.UserRepo.GetUserByID(req.AssigneeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Assignee not found", "error": "assignee_not_found"})
	}
	if !assignee.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Assignee is deactivated", "error": "assignee_inactive"})
	}

	fromStatus := store.CurrentStatus
	if err := services.ApplyAction(store, action); err != nil {
		var invalid *services.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": invalid.Error(), "error": "invalid_transition"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to apply workflow action", "error": err.Error()})
	}

	workflow := store.Workflow.Data()
	if req.Priority != "" {
		workflow.Priority = models.StorePriority(req.Priority)
	}
	now := utils.Today()

	var slotLabel string
	switch action {
	case services.ActionAssignInstallation:
		workflow.InstallationAssignedTo = userRefOf(assignee)
		workflow.InstallationAssignedBy = userRefOf(currentUser)
		installation := store.Installation.Data()
		installation.AssignedDate = &now
		store.Installation = datatypes.NewJSONType(installation)
		slotLabel = "installation"
	default:
		workflow.RecceAssignedTo = userRefOf(assignee)
		workflow.RecceAssignedBy = userRefOf(currentUser)
		recce := store.Recce.Data()
		recce.AssignedDate = &now
		store.Recce = datatypes.NewJSONType(recce)
		slotLabel = "recce"
	}
	store.Workflow = datatypes.NewJSONType(workflow)
	updatedBy := currentUser.Email
	store.UpdatedBy = &updatedBy

	updated, err := sc.StoreRepo.UpdateStore(store)
	if err != nil {
		config.Logger.Error("Failed to save assignment",
			zap.String("store_id", store.ID.String()),
			zap.String("slot", slotLabel),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save assignment", "error": err.Error()})
	}

	sc.afterStoreMutation(updated)
	sc.Hub.BroadcastStoreStatus(websocket.StoreStatusPayload{
		StoreID:    updated.ID,
		StoreCode:  updated.StoreCode,
		FromStatus: string(fromStatus),
		ToStatus:   string(updated.CurrentStatus),
		ChangedBy:  currentUser.Email,
	})

	go func(to, storeName, city string) {
		subject := fmt.Sprintf("New %s assignment: %s", slotLabel, storeName)
		body := fmt.Sprintf("<p>You have been assigned the %s for <b>%s</b> (%s).</p><p>Open the dashboard to get started.</p>", slotLabel, storeName, city)
		if err := utils.SendEmail(to, subject, body); err != nil {
			config.Logger.Warn("Failed to send assignment email", zap.String("recipient", to), zap.Error(err))
		}
	}(assignee.Email, updated.StoreName, updated.City)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Store assigned",
		"data":    updated,
	})
}
