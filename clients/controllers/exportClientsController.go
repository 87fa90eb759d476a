package controllers

import (
	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var clientExportHeaders = []string{
	"Client Code", "Client Name", "Branch", "GST Number", "Contract Amount",
	"Price Overrides", "Active", "Created At",
}

func clientExportRow(client models.Client) []interface{} {
	amount := ""
	if client.Amount != nil {
		amount = client.Amount.StringFixed(2)
	}
	active := "No"
	if client.IsActive {
		active = "Yes"
	}

	return []interface{}{
		client.ClientCode, client.ClientName, client.BranchName,
		client.GSTNumber, amount, len(client.Elements.Data()), active,
		client.CreatedAt.Format("2006-01-02"),
	}
}

// ExportClients writes the client list to a spreadsheet.
func (cc *ClientController) ExportClients(c *fiber.Ctx) error {
	clients, err := cc.ClientRepo.GetAllClients()
	if err != nil {
		config.Logger.Error("Failed to fetch clients for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch clients", "error": err.Error()})
	}
	if len(clients) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No clients to export", "error": "no_results"})
	}

	rows := make([][]interface{}, 0, len(clients))
	for _, client := range clients {
		rows = append(rows, clientExportRow(client))
	}

	filePath, err := utils.GenerateExcel(rows, "clients_export", clientExportHeaders)
	if err != nil {
		config.Logger.Error("Failed to generate clients export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate export", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Clients export ready",
		"download_link": utils.GetDownloadURL(c, filePath),
		"row_count":     len(rows),
	})
}
