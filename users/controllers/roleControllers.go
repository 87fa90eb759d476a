package controllers

import (
	"errors"
	"strings"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleRequest creates or updates a role with its permission map.
type RoleRequest struct {
	Name        string               `json:"name"`
	Code        string               `json:"code"`
	Description string               `json:"description"`
	Permissions models.PermissionMap `json:"permissions"`
	IsActive    *bool                `json:"is_active"`
}

func validatePermissionMap(perms models.PermissionMap) string {
	known := make(map[models.Module]struct{}, len(models.AllModules))
	for _, m := range models.AllModules {
		known[m] = struct{}{}
	}
	for module := range perms {
		if _, ok := known[module]; !ok {
			return "unknown module: " + string(module)
		}
	}
	return ""
}

// CreateRoleWithPermissions creates a role. Codes are normalized to
// uppercase and must be unique.
func (uc *UserController) CreateRoleWithPermissions(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if req.Name == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and code are required", "error": "missing_required_fields"})
	}
	if msg := validatePermissionMap(req.Permissions); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg, "error": "invalid_permissions"})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	role := models.Role{
		Name:        req.Name,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: req.Description,
		Permissions: datatypes.NewJSONType(req.Permissions),
		IsActive:    true,
		CreatedBy:   currentUser.Email,
	}

	created, err := uc.UserRepo.CreateRole(&role)
	if err != nil {
		config.Logger.Error("Failed to create role", zap.String("code", role.Code), zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Failed to create role", "error": err.Error()})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "roles")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Role created successfully",
		"data":    created,
		"error":   nil,
	})
}

// UpdateRoleWithPermissions edits a role. System roles keep their code.
func (uc *UserController) UpdateRoleWithPermissions(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if msg := validatePermissionMap(req.Permissions); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg, "error": "invalid_permissions"})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	role, err := uc.UserRepo.GetRoleByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Role not found", "error": "role_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load role", "error": err.Error()})
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Code != "" && !role.IsSystem {
		role.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if req.Permissions != nil {
		role.Permissions = datatypes.NewJSONType(req.Permissions)
	}
	if req.IsActive != nil {
		if role.IsSystem && !*req.IsActive {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "System roles cannot be deactivated",
				"error":   "system_role",
			})
		}
		role.IsActive = *req.IsActive
	}
	updatedBy := currentUser.Email
	role.UpdatedBy = &updatedBy

	updated, err := uc.UserRepo.UpdateRole(role)
	if err != nil {
		config.Logger.Error("Failed to update role", zap.String("role_id", role.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update role", "error": err.Error()})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "roles")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (uc *UserController) GetAllRoles(c *fiber.Ctx) error {
	roles, err := uc.UserRepo.GetAllRoles()
	if err != nil {
		config.Logger.Error("Failed to fetch roles", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch roles", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": roles,
		"meta": fiber.Map{"total": len(roles)},
	})
}

func (uc *UserController) GetRole(c *fiber.Ctx) error {
	role, err := uc.UserRepo.GetRoleByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Role not found", "error": "role_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load role", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role retrieved",
		"data":    role,
		"error":   nil,
	})
}
