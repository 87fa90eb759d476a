package controllers

import (
	"context"
	"fmt"
	"time"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var installationExportHeaders = []string{
	"Store Code", "Store Name", "Client Code", "Zone", "State", "City",
	"Status", "PO Number", "PO Month", "Invoice Number", "Board Type",
	"Board Width", "Board Height", "Board Size", "Quantity", "Total Cost",
	"Recce By", "Installed By", "Completed On",
}

func decimalCell(d *decimal.Decimal) interface{} {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func installationExportRow(store models.Store) []interface{} {
	workflow := store.Workflow.Data()
	recceBy := ""
	if workflow.RecceAssignedTo != nil {
		recceBy = workflow.RecceAssignedTo.Name
	}
	installedBy := ""
	if workflow.InstallationAssignedTo != nil {
		installedBy = workflow.InstallationAssignedTo.Name
	}
	completedOn := ""
	if sub := store.Installation.Data().SubmittedDate; sub != nil {
		completedOn = sub.Format("2006-01-02")
	}

	return []interface{}{
		store.StoreCode, store.StoreName, store.ClientCode, store.Zone,
		store.State, store.City, string(store.CurrentStatus), store.PONumber,
		store.POMonth, store.InvoiceNumber, store.BoardType,
		decimalCell(store.BoardWidth), decimalCell(store.BoardHeight),
		decimalCell(store.BoardSize), store.Quantity, decimalCell(store.TotalCost),
		recceBy, installedBy, completedOn,
	}
}

// ExportInstallationController generates the installation report spreadsheet.
// Results are cached in Redis keyed by the filter set, with a short lock so
// concurrent identical requests generate the file once.
func (sc *StoreController) ExportInstallationController(c *fiber.Ctx) error {
	filters := make(map[string]string)
	for _, key := range []string{"status", "zone", "state", "city", "client_code", "po_number", "start_date", "end_date"} {
		if value := cleanQueryParam(c.Query(key)); value != "" {
			filters[key] = value
		}
	}

	searchKey, storageKey := utils.GenerateHash("installation_export", filters, 1, 0)

	if filePath, err := utils.FindMatchingFile(sc.RedisClient, searchKey); err == nil && filePath != "" {
		if exists, _ := sc.FileStorage.FileExists(filePath); exists {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message":       "Installation report ready",
				"download_link": utils.GetDownloadURL(c, filePath),
				"cached":        true,
			})
		}
	}

	lockKey := fmt.Sprintf("lock:%s", searchKey)
	locked, err := sc.RedisClient.SetNX(context.Background(), lockKey, "locked", 10*time.Second).Result()
	if err != nil {
		config.Logger.Error("Failed to acquire export lock", zap.String("key", lockKey), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to check export lock", "error": err.Error()})
	}
	if !locked {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": "This report is already being generated, try again shortly",
		})
	}
	defer sc.RedisClient.Del(context.Background(), lockKey)

	stores, _, err := sc.StoreRepo.GetFilteredStores(10000, 0, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch stores for installation export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch stores for export", "error": err.Error()})
	}
	if len(stores) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No stores match the export filters",
			"error":   "no_results",
		})
	}

	rows := make([][]interface{}, 0, len(stores))
	for _, store := range stores {
		rows = append(rows, installationExportRow(store))
	}

	filePath, err := utils.GenerateExcel(rows, storageKey, installationExportHeaders)
	if err != nil {
		config.Logger.Error("Failed to generate installation report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate report", "error": err.Error()})
	}

	sc.RedisClient.SetNX(context.Background(), storageKey, filePath, 24*time.Hour)
	sc.RedisClient.SetNX(context.Background(), searchKey, filePath, 24*time.Hour)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Installation report ready",
		"download_link": utils.GetDownloadURL(c, filePath),
		"row_count":     len(rows),
	})
}
