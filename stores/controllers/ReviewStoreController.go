package controllers

import (
	"errors"
	"fmt"

	"signops-backend/config"
	"signops-backend/middleware"
	"signops-backend/stores/services"
	"signops-backend/utils"
	"signops-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReviewRequest approves or rejects a submission. A rejection should carry a
// remark explaining what to redo.
type ReviewRequest struct {
	Approve bool   `json:"approve"`
	Remark  string `json:"remark"`
}

// ReviewRecceController approves or rejects a submitted recce. Rejection puts
// the store back in the assignment pool for a fresh recce.
func (sc *StoreController) ReviewRecceController(c *fiber.Ctx) error {
	return sc.review(c, services.ActionApproveRecce, services.ActionRejectRecce, "recce")
}

// ReviewInstallationController approves (completing the store) or rejects a
// submitted installation.
func (sc *StoreController) ReviewInstallationController(c *fiber.Ctx) error {
	return sc.review(c, services.ActionCompleteInstall, services.ActionRejectInstallation, "installation")
}

func (sc *StoreController) review(c *fiber.Ctx, approveAction, rejectAction services.WorkflowAction, stage string) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if !req.Approve && req.Remark == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A remark is required when rejecting a submission",
			"error":   "missing_remark",
		})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	store, err := sc.loadStoreOr404(c)
	if err != nil {
		return err
	}

	action := approveAction
	if !req.Approve {
		action = rejectAction
	}

	fromStatus := store.CurrentStatus
	if err := services.ApplyAction(store, action); err != nil {
		var invalid *services.ErrInvalidTransition
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": invalid.Error(), "error": "invalid_transition"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to apply workflow action", "error": err.Error()})
	}

	updatedBy := currentUser.Email
	store.UpdatedBy = &updatedBy

	updated, err := sc.StoreRepo.UpdateStore(store)
	if err != nil {
		config.Logger.Error("Failed to save review decision", zap.String("store_id", store.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save review decision", "error": err.Error()})
	}

	sc.afterStoreMutation(updated)
	sc.Hub.BroadcastStoreStatus(websocket.StoreStatusPayload{
		StoreID:    updated.ID,
		StoreCode:  updated.StoreCode,
		FromStatus: string(fromStatus),
		ToStatus:   string(updated.CurrentStatus),
		ChangedBy:  currentUser.Email,
	})

	// Notify the submitting field user of the outcome
	workflow := updated.Workflow.Data()
	assignee := workflow.RecceAssignedTo
	if stage == "installation" {
		assignee = workflow.InstallationAssignedTo
	}
	if assignee != nil {
		verdict := "approved"
		if !req.Approve {
			verdict = "rejected"
		}
		go func(to, storeName, remark string) {
			subject := fmt.Sprintf("Your %s for %s was %s", stage, storeName, verdict)
			body := fmt.Sprintf("<p>Your %s submission for <b>%s</b> was %s.</p>", stage, storeName, verdict)
			if remark != "" {
				body += fmt.Sprintf("<p>Reviewer remark: %s</p>", remark)
			}
			if err := utils.SendEmail(to, subject, body); err != nil {
				config.Logger.Warn("Failed to send review email", zap.String("recipient", to), zap.Error(err))
			}
		}(assignee.Email, updated.StoreName, req.Remark)
	}

	message := fmt.Sprintf("%s approved", stage)
	if !req.Approve {
		message = fmt.Sprintf("%s rejected", stage)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"data":    updated,
	})
}
