package utils

import (
	"os"
	"strings"
	"testing"
)

func TestGenerateExcelReturnsStatablePath(t *testing.T) {
	rows := [][]interface{}{
		{"ST-001", "MG Road"},
		{"ST-002", "Brigade Road"},
	}

	filePath, err := GenerateExcel(rows, "export_path_check", []string{"Store Code", "Store Name"})
	if err != nil {
		t.Fatalf("GenerateExcel failed: %v", err)
	}
	t.Cleanup(func() { os.Remove(filePath) })

	if strings.HasPrefix(filePath, "/") {
		t.Errorf("path %q is absolute; cache-hit os.Stat checks need it relative to the working directory", filePath)
	}
	if !strings.HasPrefix(filePath, "public/files/") {
		t.Errorf("path %q not under public/files/", filePath)
	}

	// The returned path must resolve as-is, the export cache stats it before
	// reusing a cached download link.
	if _, err := os.Stat(filePath); err != nil {
		t.Errorf("returned path does not resolve: %v", err)
	}
}
