package controllers

import (
	"strings"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/stores/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func cleanQueryParam(param string) string {
	param = strings.TrimSpace(param)
	if param == "" || strings.ToLower(param) == "null" {
		return ""
	}
	return param
}

// GetFilteredStoresController serves the paginated master store list.
func (sc *StoreController) GetFilteredStoresController(c *fiber.Ctx) error {
	pageSize := c.QueryInt("page_size", 10)
	if pageSize <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid page_size parameter"})
	}

	page := c.QueryInt("page", 1)
	if page <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid page parameter"})
	}
	offset := (page - 1) * pageSize

	filters := make(map[string]string)
	for _, key := range []string{"status", "zone", "state", "city", "client_code", "po_number", "search", "start_date", "end_date"} {
		if value := cleanQueryParam(c.Query(key)); value != "" {
			filters[key] = value
		}
	}

	stores, total, err := sc.StoreRepo.GetFilteredStores(pageSize, offset, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered stores", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch filtered stores"})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": toListItems(stores),
		"meta": fiber.Map{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	})
}

// listForSlot is the shared implementation behind the recce and installation
// list views. Admins see every store in the slot's statuses; field users see
// only their own assignments.
func (sc *StoreController) listForSlot(c *fiber.Ctx, statuses []models.StoreStatus, slot repositories.AssignmentSlot) error {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	var assigneeID *uuid.UUID
	if !currentUser.IsSuperAdmin() && !currentUser.CanView(models.ModuleStores) {
		assigneeID = &currentUser.ID
	}
	if raw := cleanQueryParam(c.Query("assignee_id")); raw != "" && assigneeID == nil {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignee_id parameter"})
		}
		assigneeID = &parsed
	}

	if status := cleanQueryParam(c.Query("status")); status != "" {
		statuses = []models.StoreStatus{models.StoreStatus(status)}
	}

	stores, err := sc.StoreRepo.GetStoresByStatuses(statuses, assigneeID, slot)
	if err != nil {
		config.Logger.Error("Failed to fetch stores for list view",
			zap.String("slot", string(slot)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stores"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": toListItems(stores),
		"meta": fiber.Map{"total": len(stores)},
	})
}

// GetRecceStoresController lists stores visible in the recce view.
func (sc *StoreController) GetRecceStoresController(c *fiber.Ctx) error {
	return sc.listForSlot(c, models.RecceListStatuses, repositories.SlotRecce)
}

// GetInstallationStoresController lists stores visible in the installation view.
func (sc *StoreController) GetInstallationStoresController(c *fiber.Ctx) error {
	return sc.listForSlot(c, models.InstallationListStatuses, repositories.SlotInstallation)
}

// RetrieveSingleStoreController returns one store with its client.
func (sc *StoreController) RetrieveSingleStoreController(c *fiber.Ctx) error {
	store, err := sc.loadStoreOr404(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Store retrieved",
		"data":    storeListItem{Store: *store, IsDone: store.CurrentStatus.IsDone()},
	})
}
