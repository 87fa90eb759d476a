package controllers

import (
	"errors"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/reports/services"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RFQRequest struct {
	StoreID    uuid.UUID   `json:"store_id"`
	ElementIDs []uuid.UUID `json:"element_ids"`
}

// GenerateRFQ renders the quotation PDF for a store. Rates come from the
// client's override list when present, the element catalog otherwise. An
// empty element_ids falls back to the full active catalog.
func (rc *ReportsController) GenerateRFQ(c *fiber.Ctx) error {
	var req RFQRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if req.StoreID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "store_id is required", "error": "missing_required_fields"})
	}

	store, err := rc.StoreRepo.GetStoreByID(req.StoreID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Store not found", "error": "store_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load store", "error": err.Error()})
	}

	if len(store.Recce.Data().Photos) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Store has no recce submission to quote against",
			"error":   "no_recce_data",
		})
	}

	var elements []models.Element
	if len(req.ElementIDs) > 0 {
		ids := make([]string, 0, len(req.ElementIDs))
		for _, id := range req.ElementIDs {
			ids = append(ids, id.String())
		}
		elements, err = rc.ElementRepo.GetElementsByIDs(ids)
	} else {
		elements, err = rc.ElementRepo.GetActiveElements()
	}
	if err != nil {
		config.Logger.Error("Failed to load elements for RFQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load elements", "error": err.Error()})
	}
	if len(elements) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No elements to quote", "error": "no_elements"})
	}

	filePath, err := services.GenerateRFQPDF(store, store.Client, elements)
	if err != nil {
		config.Logger.Error("Failed to generate RFQ",
			zap.String("store_code", store.StoreCode),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate RFQ", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "RFQ generated",
		"download_link": utils.GetDownloadURL(c, filePath),
	})
}

// GenerateCertificate renders the completion certificate for one store.
func (rc *ReportsController) GenerateCertificate(c *fiber.Ctx) error {
	store, err := rc.StoreRepo.GetStoreByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Store not found", "error": "store_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load store", "error": err.Error()})
	}

	if store.CurrentStatus != models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Certificates are only available for completed stores",
			"error":   "store_not_completed",
		})
	}

	filePath, err := services.GenerateCompletionCertificate(store)
	if err != nil {
		config.Logger.Error("Failed to generate certificate",
			zap.String("store_code", store.StoreCode),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate certificate", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Certificate generated",
		"download_link": utils.GetDownloadURL(c, filePath),
	})
}
