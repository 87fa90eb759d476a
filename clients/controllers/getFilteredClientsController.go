package controllers

import (
	"errors"

	"signops-backend/config"
	"signops-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (cc *ClientController) GetFilteredClients(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	offset := (params.Page - 1) * params.PageSize

	clients, total, err := cc.ClientRepo.GetFilteredClients(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch clients", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch clients", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": clients,
		"meta": pagination.BuildPaginationMeta(c, params, total),
	})
}

// GetAllClients returns the active client list for dropdowns.
func (cc *ClientController) GetAllClients(c *fiber.Ctx) error {
	clients, err := cc.ClientRepo.GetAllClients()
	if err != nil {
		config.Logger.Error("Failed to fetch client list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch clients", "error": err.Error()})
	}

	active := clients[:0]
	for _, client := range clients {
		if client.IsActive {
			active = append(active, client)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": active,
		"meta": fiber.Map{"total": len(active)},
	})
}

func (cc *ClientController) RetrieveSingleClient(c *fiber.Ctx) error {
	client, err := cc.ClientRepo.GetClientByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found", "error": "client_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load client", "error": err.Error()})
	}

	storeCount, err := cc.ClientRepo.CountStoresForClient(client.ID.String())
	if err != nil {
		config.Logger.Warn("Failed to count client stores", zap.String("client_id", client.ID.String()), zap.Error(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Client retrieved",
		"data": fiber.Map{
			"client":      client,
			"store_count": storeCount,
		},
		"error": nil,
	})
}
