package controllers

import (
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
)

type CreateClientRequest struct {
	ClientCode string                 `json:"client_code"`
	ClientName string                 `json:"client_name"`
	BranchName string                 `json:"branch_name"`
	Amount     *decimal.Decimal       `json:"amount"`
	GSTNumber  string                 `json:"gst_number"`
	Elements   []models.ClientElement `json:"elements"`
}

func (cc *ClientController) CreateClient(c *fiber.Ctx) error {
	var req CreateClientRequest
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

	client := models.Client{
		ClientCode: strings.ToUpper(strings.TrimSpace(req.ClientCode)),
		ClientName: strings.TrimSpace(req.ClientName),
		BranchName: strings.TrimSpace(req.BranchName),
		Amount:     req.Amount,
		GSTNumber:  strings.ToUpper(strings.TrimSpace(req.GSTNumber)),
		Elements:   datatypes.NewJSONType(req.Elements),
		IsActive:   true,
		CreatedBy:  currentUser.Email,
	}

	if err := services.ValidateClient(&client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"data":    nil,
			"error":   "validation_failed",
		})
	}

	created, err := cc.ClientRepo.CreateClient(&client)
	if err != nil {
		config.Logger.Error("Failed to create client", zap.String("client_code", client.ClientCode), zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Failed to create client",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(cc.RedisClient, "clients")
	if err := cc.BleveRepo.IndexSingleClient(*created); err != nil {
		config.Logger.Warn("Failed to index client", zap.String("client_code", created.ClientCode), zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Client created successfully",
		"data":    created,
		"error":   nil,
	})
}
