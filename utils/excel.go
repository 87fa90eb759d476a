package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportDir is where generated export files land; the cleanup cron sweeps it.
const ExportDir = "./public/files"

// EnsureDirectoryExists ensures the specified directory exists before file saving
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating directory: %v", err)
		}
	}
	return nil
}

// GenerateExcel creates an Excel file from pre-flattened rows. Each row must
// have the same length as headers.
func GenerateExcel(rows [][]interface{}, taskName string, headers []string) (string, error) {
	if err := os.MkdirAll(ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure export directory exists: %v", err)
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}

	// Headers
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("error resolving header cell: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	// Data rows
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return "", fmt.Errorf("error resolving cell: %v", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("error setting value at row %d col %d: %v", rowIdx+2, colIdx+1, err)
			}
		}
	}

	f.SetActiveSheet(index)

	fileName := fmt.Sprintf("%s_%s.xlsx", taskName, Today().Format("2006-01-02_15-04-05"))
	relativeFilePath := fmt.Sprintf("%s/%s", ExportDir, fileName)

	if err := f.SaveAs(relativeFilePath); err != nil {
		return "", err
	}

	// Path relative to the working directory; the /public static route
	// serves it and os.Stat resolves it for cache-hit checks.
	return fmt.Sprintf("public/files/%s", fileName), nil
}
