package controllers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"signops-backend/config"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedPhotoExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {},
}

const maxPhotoSizeBytes = 10 << 20 // 10 MB

// UploadPhotoController stores a site photograph and returns its URL. The
// recce and installation submit endpoints reference these URLs.
func (sc *StoreController) UploadPhotoController(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to get photo", "error": err.Error()})
	}

	if fileHeader.Size > maxPhotoSizeBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": "Photo exceeds the 10MB size limit",
			"error":   "file_too_large",
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedPhotoExtensions[ext]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Only jpg, jpeg, png and webp photos are accepted",
			"error":   "unsupported_file_type",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to open photo", "error": err.Error()})
	}
	defer file.Close()

	fileName := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), ext)
	storedPath, err := sc.FileStorage.UploadFile(file, fileName)
	if err != nil {
		config.Logger.Error("Failed to store uploaded photo", zap.String("file", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to store photo", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Photo uploaded",
		"file_url": utils.GetDownloadURL(c, storedPath),
	})
}
