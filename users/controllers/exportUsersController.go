package controllers

import (
	"strings"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var userExportHeaders = []string{
	"Name", "Email", "Phone", "Roles", "Auth Method", "Active", "Last Login", "Created At",
}

func userExportRow(user models.User) []interface{} {
	roleCodes := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roleCodes = append(roleCodes, role.Code)
	}
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}
	lastLogin := ""
	if user.LastLoginAt != nil {
		lastLogin = user.LastLoginAt.Format("2006-01-02 15:04")
	}
	active := "No"
	if user.IsActive {
		active = "Yes"
	}

	return []interface{}{
		user.Name, user.Email, phone, strings.Join(roleCodes, ", "),
		string(user.AuthMethod), active, lastLogin,
		user.CreatedAt.Format("2006-01-02"),
	}
}

// ExportUsers writes the full user list to a spreadsheet.
func (uc *UserController) ExportUsers(c *fiber.Ctx) error {
	users, err := uc.UserRepo.GetAllUsers()
	if err != nil {
		config.Logger.Error("Failed to fetch users for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch users", "error": err.Error()})
	}
	if len(users) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No users to export", "error": "no_results"})
	}

	rows := make([][]interface{}, 0, len(users))
	for _, user := range users {
		rows = append(rows, userExportRow(user))
	}

	filePath, err := utils.GenerateExcel(rows, "users_export", userExportHeaders)
	if err != nil {
		config.Logger.Error("Failed to generate users export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate export", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Users export ready",
		"download_link": utils.GetDownloadURL(c, filePath),
		"row_count":     len(rows),
	})
}

var roleExportHeaders = []string{"Name", "Code", "Description", "System", "Active", "Modules With View"}

// ExportRoles writes the role list with a view-module summary.
func (uc *UserController) ExportRoles(c *fiber.Ctx) error {
	roles, err := uc.UserRepo.GetAllRoles()
	if err != nil {
		config.Logger.Error("Failed to fetch roles for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch roles", "error": err.Error()})
	}
	if len(roles) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No roles to export", "error": "no_results"})
	}

	rows := make([][]interface{}, 0, len(roles))
	for _, role := range roles {
		perms := role.Permissions.Data()
		viewable := make([]string, 0, len(perms))
		for _, module := range models.AllModules {
			if set, ok := perms[module]; ok && set.View {
				viewable = append(viewable, string(module))
			}
		}
		system := "No"
		if role.IsSystem {
			system = "Yes"
		}
		active := "No"
		if role.IsActive {
			active = "Yes"
		}
		rows = append(rows, []interface{}{
			role.Name, role.Code, role.Description, system, active, strings.Join(viewable, ", "),
		})
	}

	filePath, err := utils.GenerateExcel(rows, "roles_export", roleExportHeaders)
	if err != nil {
		config.Logger.Error("Failed to generate roles export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate export", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Roles export ready",
		"download_link": utils.GetDownloadURL(c, filePath),
		"row_count":     len(rows),
	})
}
