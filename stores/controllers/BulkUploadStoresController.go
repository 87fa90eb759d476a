package controllers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// bulkUploadColumns is the expected header order of the store upload sheet.
var bulkUploadColumns = []string{
	"Store Code", "Dealer Code", "Store Name", "Client Code", "Zone", "State",
	"District", "City", "Area", "Address", "Pincode", "Board Type",
	"Board Width", "Board Height", "Quantity", "PO Number", "PO Month",
}

type storeRowError struct {
	RowNumber int
	StoreCode string
	StoreName string
	Reason    string
}

// filterExistingStores drops stores whose code already exists for the same
// client, keeping each rejected row's original sheet number for the report.
func filterExistingStores(stores []models.Store, rowNumbers map[string]int, dupKeys map[string]struct{}) ([]models.Store, []storeRowError) {
	kept := stores[:0]
	var rejected []storeRowError
	for _, store := range stores {
		key := store.StoreCode + "|" + store.ClientCode
		if _, isDup := dupKeys[key]; isDup {
			rejected = append(rejected, storeRowError{
				RowNumber: rowNumbers[key],
				StoreCode: store.StoreCode,
				StoreName: store.StoreName,
				Reason:    "store code already exists for this client",
			})
			continue
		}
		kept = append(kept, store)
	}
	return kept, rejected
}

// BulkUploadStoresController ingests an Excel sheet of stores. Valid rows are
// inserted in one transaction; invalid rows are returned in an error report
// the caller can download.
func (sc *StoreController) BulkUploadStoresController(c *fiber.Ctx) error {
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
	userEmail := currentUser.Email

	f, err := excelize.OpenFile(tempFilePath)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to open Excel file", "error": err.Error()})
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to read rows from Excel sheet", "error": err.Error()})
	}
	if len(rows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "The uploaded sheet has no data rows", "error": "empty_sheet"})
	}

	// Resolve client codes once so every row gets the FK without a per-row query
	clientsByCode := map[string]uuid.UUID{}
	var clients []models.Client
	if err := sc.DB.Find(&clients).Error; err == nil {
		for _, cl := range clients {
			clientsByCode[cl.ClientCode] = cl.ID
		}
	}

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var validStores []models.Store
	var invalidRows []storeRowError
	codesInFile := make(map[string]struct{})
	rowNumbers := make(map[string]int)

	for i, row := range rows {
		if i == 0 {
			continue
		}

		storeCode := cell(row, 0)
		storeName := cell(row, 2)
		clientCode := cell(row, 3)

		reject := func(reason string) {
			invalidRows = append(invalidRows, storeRowError{
				RowNumber: i + 1,
				StoreCode: storeCode,
				StoreName: storeName,
				Reason:    reason,
			})
		}

		if storeCode == "" || storeName == "" || clientCode == "" {
			reject("store code, store name and client code are required")
			continue
		}

		fileKey := storeCode + "|" + clientCode
		if _, exists := codesInFile[fileKey]; exists {
			reject("duplicate store code for the same client within the uploaded file")
			continue
		}
		codesInFile[fileKey] = struct{}{}
		rowNumbers[fileKey] = i + 1

		store := models.Store{
			ID:            uuid.New(),
			StoreCode:     storeCode,
			DealerCode:    cell(row, 1),
			StoreName:     storeName,
			ClientCode:    clientCode,
			Zone:          cell(row, 4),
			State:         cell(row, 5),
			District:      cell(row, 6),
			City:          cell(row, 7),
			Area:          cell(row, 8),
			Address:       cell(row, 9),
			Pincode:       cell(row, 10),
			BoardType:     cell(row, 11),
			PONumber:      cell(row, 15),
			POMonth:       cell(row, 16),
			CurrentStatus: models.StatusUploaded,
			CreatedBy:     userEmail,
			Quantity:      1,
		}

		if clientID, ok := clientsByCode[clientCode]; ok {
			id := clientID
			store.ClientID = &id
		}

		if raw := cell(row, 12); raw != "" {
			width, err := decimal.NewFromString(raw)
			if err != nil || width.IsNegative() {
				reject(fmt.Sprintf("invalid board width %q", raw))
				continue
			}
			store.BoardWidth = &width
		}
		if raw := cell(row, 13); raw != "" {
			height, err := decimal.NewFromString(raw)
			if err != nil || height.IsNegative() {
				reject(fmt.Sprintf("invalid board height %q", raw))
				continue
			}
			store.BoardHeight = &height
		}
		if store.BoardWidth != nil && store.BoardHeight != nil {
			size := store.BoardWidth.Mul(*store.BoardHeight)
			store.BoardSize = &size
		}
		if raw := cell(row, 14); raw != "" {
			qty, err := strconv.Atoi(raw)
			if err != nil || qty <= 0 {
				reject(fmt.Sprintf("invalid quantity %q", raw))
				continue
			}
			store.Quantity = qty
		}

		validStores = append(validStores, store)
	}

	// Rows that collide with stores already in the database are reported,
	// not silently skipped.
	var dbDuplicates []models.Store
	fileCodes := make([]string, 0, len(codesInFile))
	for _, store := range validStores {
		fileCodes = append(fileCodes, store.StoreCode)
	}
	if len(fileCodes) > 0 {
		if err := sc.DB.Where("store_code IN ?", fileCodes).Find(&dbDuplicates).Error; err != nil {
			config.Logger.Error("Failed to check for duplicate stores", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to check for duplicate stores", "error": err.Error()})
		}
	}
	dupKeys := make(map[string]struct{}, len(dbDuplicates))
	for _, dup := range dbDuplicates {
		dupKeys[dup.StoreCode+"|"+dup.ClientCode] = struct{}{}
	}

	validStores, dupErrors := filterExistingStores(validStores, rowNumbers, dupKeys)
	invalidRows = append(invalidRows, dupErrors...)

	var downloadLink string
	if len(invalidRows) > 0 {
		headers := []string{"Row", "StoreCode", "StoreName", "Reason"}
		reportRows := make([][]interface{}, 0, len(invalidRows))
		for _, bad := range invalidRows {
			reportRows = append(reportRows, []interface{}{bad.RowNumber, bad.StoreCode, bad.StoreName, bad.Reason})
		}
		filePath, err := utils.GenerateExcel(reportRows, "store_upload_errors_"+uuid.New().String(), headers)
		if err != nil {
			config.Logger.Warn("Failed to generate bulk upload error report", zap.Error(err))
		} else {
			downloadLink = utils.GetDownloadURL(c, filePath)
			subject := "Store Upload Errors - " + time.Now().Format("2006-01-02 15:04:05")
			body := fmt.Sprintf("<p>%d row(s) in your store upload were rejected.</p><p><a href=%q>Download the error report</a></p>", len(invalidRows), downloadLink)
			if err := utils.SendEmail(userEmail, subject, body); err != nil {
				config.Logger.Warn("Failed to email bulk upload error report", zap.String("recipient", userEmail), zap.Error(err))
			}
		}
	}

	if len(validStores) > 0 {
		if err := sc.StoreRepo.BulkCreateStores(validStores); err != nil {
			config.Logger.Error("Bulk store insert failed", zap.Int("count", len(validStores)), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message":       "Failed to insert stores. Database changes rolled back.",
				"error":         err.Error(),
				"invalid_count": len(invalidRows),
				"download_link": downloadLink,
			})
		}

		if sc.BleveRepo != nil {
			for _, store := range validStores {
				if err := sc.BleveRepo.IndexSingleStore(store); err != nil {
					config.Logger.Warn("Failed to index uploaded store",
						zap.String("store_code", store.StoreCode),
						zap.Error(err),
					)
				}
			}
		}

		utils.InvalidateCacheAsync(sc.RedisClient, "stores")
		utils.InvalidateCacheAsync(sc.RedisClient, "dashboard_stats")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":          "Bulk upload completed",
		"successful_count": len(validStores),
		"invalid_count":    len(invalidRows),
		"download_link":    downloadLink,
	})
}

// DownloadStoreTemplateController serves a blank upload sheet with the
// expected headers.
func (sc *StoreController) DownloadStoreTemplateController(c *fiber.Ctx) error {
	filePath, err := utils.GenerateExcel(nil, "store_upload_template", bulkUploadColumns)
	if err != nil {
		config.Logger.Error("Failed to generate store template", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate template",
			"error":   err.Error(),
		})
	}
	return c.Download(filePath, "store_upload_template.xlsx")
}
