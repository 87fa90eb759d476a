package controllers

import (
	"fmt"
	"os"
	"strings"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/users/services"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var userUploadColumns = []string{"Name", "Email", "Phone", "Password", "Role Codes"}

// BulkUploadUsers ingests an Excel sheet of users. Role Codes is a
// comma-separated list of role codes, e.g. "FIELD,OPS_MANAGER".
func (uc *UserController) BulkUploadUsers(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to get file", "error": err.Error()})
	}

	tempFilePath := fmt.Sprintf("./tmp/%s", file.Filename)
	if err := c.SaveFile(file, tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save file", "error": err.Error()})
	}
	defer os.Remove(tempFilePath)

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	f, err := excelize.OpenFile(tempFilePath)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to open Excel file", "error": err.Error()})
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to read rows from Excel sheet", "error": err.Error()})
	}

	allRoles, err := uc.UserRepo.GetAllRoles()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load roles", "error": err.Error()})
	}
	rolesByCode := make(map[string]models.Role, len(allRoles))
	for _, role := range allRoles {
		rolesByCode[role.Code] = role
	}

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var created int
	var errorRows [][]interface{}
	reject := func(rowNum int, email, reason string) {
		errorRows = append(errorRows, []interface{}{rowNum, email, reason})
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		name := cell(row, 0)
		email := cell(row, 1)
		phone := cell(row, 2)
		password := cell(row, 3)
		roleCodes := cell(row, 4)

		var roles []models.Role
		for _, code := range strings.Split(roleCodes, ",") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			role, ok := rolesByCode[code]
			if !ok {
				roles = nil
				reject(i+1, email, fmt.Sprintf("unknown role code %q", code))
				break
			}
			roles = append(roles, role)
		}
		if len(roles) == 0 {
			if roleCodes == "" {
				reject(i+1, email, "at least one role code is required")
			}
			continue
		}

		user := models.User{
			Name:      name,
			Email:     email,
			Password:  password,
			Roles:     roles,
			IsActive:  true,
			CreatedBy: currentUser.Email,
		}
		if phone != "" {
			user.Phone = &phone
		}

		if msg := services.ValidateUser(&user); msg != "" {
			reject(i+1, email, msg)
			continue
		}
		if msg := services.ValidatePassword(password); msg != "" {
			reject(i+1, email, msg)
			continue
		}
		if msg := services.ValidateEmail(email, uc.UserRepo); msg != "" {
			reject(i+1, email, msg)
			continue
		}

		createdUser, err := uc.UserRepo.CreateUser(&user)
		if err != nil {
			reject(i+1, email, err.Error())
			continue
		}
		created++

		if uc.BleveRepo != nil {
			if err := uc.BleveRepo.IndexSingleUser(*createdUser); err != nil {
				config.Logger.Warn("Failed to index uploaded user", zap.String("email", email), zap.Error(err))
			}
		}
	}

	var downloadLink string
	if len(errorRows) > 0 {
		filePath, err := utils.GenerateExcel(errorRows, "user_upload_errors_"+uuid.New().String(), []string{"Row", "Email", "Reason"})
		if err != nil {
			config.Logger.Warn("Failed to generate user upload error report", zap.Error(err))
		} else {
			downloadLink = utils.GetDownloadURL(c, filePath)
		}
	}

	if created > 0 {
		utils.InvalidateCacheAsync(uc.RedisClient, "users")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":          "Bulk upload completed",
		"successful_count": created,
		"invalid_count":    len(errorRows),
		"download_link":    downloadLink,
	})
}

// DownloadUserTemplate serves a blank user upload sheet.
func (uc *UserController) DownloadUserTemplate(c *fiber.Ctx) error {
	filePath, err := utils.GenerateExcel(nil, "user_upload_template", userUploadColumns)
	if err != nil {
		config.Logger.Error("Failed to generate user template", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate template", "error": err.Error()})
	}
	return c.Download(filePath, "user_upload_template.xlsx")
}
