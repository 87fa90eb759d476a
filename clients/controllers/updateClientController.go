package controllers

import (
	"errors"
	"strings"

	"signops-backend/clients/services"
	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UpdateClientRequest struct {
	ClientName *string                 `json:"client_name"`
	BranchName *string                 `json:"branch_name"`
	Amount     *decimal.Decimal        `json:"amount"`
	GSTNumber  *string                 `json:"gst_number"`
	Elements   *[]models.ClientElement `json:"elements"`
	IsActive   *bool                   `json:"is_active"`
}

// UpdateClient applies a partial edit. The client code is immutable
// because stores reference it denormalized.
func (cc *ClientController) UpdateClient(c *fiber.Ctx) error {
	var req UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	client, err := cc.ClientRepo.GetClientByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found", "error": "client_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load client", "error": err.Error()})
	}

	if req.ClientName != nil {
		client.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.BranchName != nil {
		client.BranchName = strings.TrimSpace(*req.BranchName)
	}
	if req.Amount != nil {
		client.Amount = req.Amount
	}
	if req.GSTNumber != nil {
		client.GSTNumber = strings.ToUpper(strings.TrimSpace(*req.GSTNumber))
	}
	if req.Elements != nil {
		client.Elements = datatypes.NewJSONType(*req.Elements)
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	updatedBy := currentUser.Email
	client.UpdatedBy = &updatedBy

	if err := services.ValidateClient(client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"data":    nil,
			"error":   "validation_failed",
		})
	}

	updated, err := cc.ClientRepo.UpdateClient(client)
	if err != nil {
		config.Logger.Error("Failed to update client", zap.String("client_id", client.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update client", "error": err.Error()})
	}

	utils.InvalidateCacheAsync(cc.RedisClient, "clients")
	if err := cc.BleveRepo.UpdateClient(*updated); err != nil {
		config.Logger.Warn("Failed to reindex client", zap.String("client_code", updated.ClientCode), zap.Error(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Client updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (cc *ClientController) DeactivateClient(c *fiber.Ctx) error {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	id := c.Params("id")
	client, err := cc.ClientRepo.GetClientByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found", "error": "client_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load client", "error": err.Error()})
	}

	if err := cc.ClientRepo.DeactivateClient(id, currentUser.Email); err != nil {
		config.Logger.Error("Failed to deactivate client", zap.String("client_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to deactivate client", "error": err.Error()})
	}

	utils.InvalidateCacheAsync(cc.RedisClient, "clients")
	config.Logger.Info("Client deactivated",
		zap.String("client_code", client.ClientCode),
		zap.String("by", currentUser.Email))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Client deactivated",
		"data":    nil,
		"error":   nil,
	})
}
