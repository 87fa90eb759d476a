package controllers

import (
	"context"
	"errors"
	"strings"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/elements/repositories"
	"signops-backend/middleware"
	"signops-backend/utils"
	"signops-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ElementController struct {
	ElementRepo repositories.ElementRepository
	DB          *gorm.DB
	Ctx         context.Context
	RedisClient *redis.Client
}

type ElementRequest struct {
	Name         string           `json:"name"`
	StandardRate *decimal.Decimal `json:"standard_rate"`
	Unit         string           `json:"unit"`
	IsActive     *bool            `json:"is_active"`
}

func (ec *ElementController) CreateElement(c *fiber.Ctx) error {
	var req ElementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required", "error": "missing_required_fields"})
	}
	if req.StandardRate == nil || req.StandardRate.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "standard_rate must be zero or positive", "error": "invalid_rate"})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	element := models.Element{
		Name:         strings.TrimSpace(req.Name),
		StandardRate: *req.StandardRate,
		Unit:         req.Unit,
		IsActive:     true,
		CreatedBy:    currentUser.Email,
	}
	if element.Unit == "" {
		element.Unit = "sq.ft"
	}

	created, err := ec.ElementRepo.CreateElement(&element)
	if err != nil {
		config.Logger.Error("Failed to create element", zap.String("name", element.Name), zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Failed to create element", "error": err.Error()})
	}

	utils.InvalidateCacheAsync(ec.RedisClient, "elements")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Element created successfully",
		"data":    created,
		"error":   nil,
	})
}

func (ec *ElementController) UpdateElement(c *fiber.Ctx) error {
	var req ElementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	element, err := ec.ElementRepo.GetElementByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Element not found", "error": "element_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load element", "error": err.Error()})
	}

	if strings.TrimSpace(req.Name) != "" {
		element.Name = strings.TrimSpace(req.Name)
	}
	if req.StandardRate != nil {
		if req.StandardRate.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "standard_rate must be zero or positive", "error": "invalid_rate"})
		}
		element.StandardRate = *req.StandardRate
	}
	if req.Unit != "" {
		element.Unit = req.Unit
	}
	if req.IsActive != nil {
		element.IsActive = *req.IsActive
	}
	updatedBy := currentUser.Email
	element.UpdatedBy = &updatedBy

	updated, err := ec.ElementRepo.UpdateElement(element)
	if err != nil {
		config.Logger.Error("Failed to update element", zap.String("element_id", element.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update element", "error": err.Error()})
	}

	utils.InvalidateCacheAsync(ec.RedisClient, "elements")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Element updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (ec *ElementController) DeactivateElement(c *fiber.Ctx) error {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	id := c.Params("id")
	if _, err := ec.ElementRepo.GetElementByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Element not found", "error": "element_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load element", "error": err.Error()})
	}

	if err := ec.ElementRepo.DeactivateElement(id, currentUser.Email); err != nil {
		config.Logger.Error("Failed to deactivate element", zap.String("element_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to deactivate element", "error": err.Error()})
	}

	utils.InvalidateCacheAsync(ec.RedisClient, "elements")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Element deactivated",
		"data":    nil,
		"error":   nil,
	})
}

func (ec *ElementController) GetFilteredElements(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	offset := (params.Page - 1) * params.PageSize

	elements, total, err := ec.ElementRepo.GetFilteredElements(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch elements", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch elements", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": elements,
		"meta": pagination.BuildPaginationMeta(c, params, total),
	})
}

// GetActiveElements returns the catalog for quotation pickers.
func (ec *ElementController) GetActiveElements(c *fiber.Ctx) error {
	elements, err := ec.ElementRepo.GetActiveElements()
	if err != nil {
		config.Logger.Error("Failed to fetch active elements", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch elements", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": elements,
		"meta": fiber.Map{"total": len(elements)},
	})
}

func (ec *ElementController) RetrieveSingleElement(c *fiber.Ctx) error {
	element, err := ec.ElementRepo.GetElementByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Element not found", "error": "element_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load element", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Element retrieved",
		"data":    element,
		"error":   nil,
	})
}
