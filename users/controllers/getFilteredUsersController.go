package controllers

import (
	"errors"
	"strings"

	"signops-backend/config"
	"signops-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *UserController) GetFilteredUsers(c *fiber.Ctx) error {
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
	for _, key := range []string{"active", "search", "start_date", "end_date"} {
		if value := strings.TrimSpace(c.Query(key)); value != "" && strings.ToLower(value) != "null" {
			filters[key] = value
		}
	}

	users, total, err := uc.UserRepo.GetFilteredUsers(pageSize, offset, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch filtered users"})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": users,
		"meta": fiber.Map{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	})
}

// GetAssignableUsers returns the active users eligible for a workflow slot.
// ?module=recce or ?module=installation; defaults to recce.
func (uc *UserController) GetAssignableUsers(c *fiber.Ctx) error {
	module := models.ModuleRecce
	if c.Query("module") == string(models.ModuleInstallation) {
		module = models.ModuleInstallation
	}

	users, err := uc.UserRepo.GetUsersByModule(module)
	if err != nil {
		config.Logger.Error("Failed to fetch assignable users", zap.String("module", string(module)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assignable users"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": users,
		"meta": fiber.Map{"total": len(users)},
	})
}

// RetrieveSingleUser returns a user with their workflow assignment counts.
func (uc *UserController) RetrieveSingleUser(c *fiber.Ctx) error {
	id := c.Params("id")

	user, err := uc.UserRepo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found", "error": "user_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load user", "error": err.Error()})
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id", "error": err.Error()})
	}

	recceCount, installationCount, err := uc.StoreRepo.CountAssignedToUser(userID)
	if err != nil {
		config.Logger.Warn("Failed to count user assignments", zap.String("user_id", id), zap.Error(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User retrieved",
		"data": fiber.Map{
			"user": user,
			"stats": fiber.Map{
				"recce_assigned":        recceCount,
				"installation_assigned": installationCount,
			},
		},
		"error": nil,
	})
}
