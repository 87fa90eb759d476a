package controllers

import (
	"testing"

	"signops-backend/db/models"
)

func TestFilterExistingStoresKeepsSheetRowNumbers(t *testing.T) {
	stores := []models.Store{
		{StoreCode: "ST-001", ClientCode: "CL-A", StoreName: "Fresh Mart"},
		{StoreCode: "ST-002", ClientCode: "CL-A", StoreName: "City Grocer"},
		{StoreCode: "ST-003", ClientCode: "CL-B", StoreName: "Corner Shop"},
	}
	rowNumbers := map[string]int{
		"ST-001|CL-A": 2,
		"ST-002|CL-A": 5,
		"ST-003|CL-B": 9,
	}
	dupKeys := map[string]struct{}{
		"ST-002|CL-A": {},
		"ST-003|CL-B": {},
	}

	kept, rejected := filterExistingStores(stores, rowNumbers, dupKeys)

	if len(kept) != 1 || kept[0].StoreCode != "ST-001" {
		t.Fatalf("kept = %+v, want only ST-001", kept)
	}
	if len(rejected) != 2 {
		t.Fatalf("rejected %d rows, want 2", len(rejected))
	}
	wantRows := map[string]int{"ST-002": 5, "ST-003": 9}
	for _, bad := range rejected {
		if want := wantRows[bad.StoreCode]; bad.RowNumber != want {
			t.Errorf("%s reported at row %d, want %d", bad.StoreCode, bad.RowNumber, want)
		}
		if bad.Reason == "" {
			t.Errorf("%s rejected without a reason", bad.StoreCode)
		}
	}
}

func TestFilterExistingStoresNoDuplicates(t *testing.T) {
	stores := []models.Store{
		{StoreCode: "ST-010", ClientCode: "CL-A", StoreName: "North Outlet"},
	}
	kept, rejected := filterExistingStores(stores, map[string]int{"ST-010|CL-A": 2}, map[string]struct{}{})
	if len(kept) != 1 || len(rejected) != 0 {
		t.Fatalf("kept %d rejected %d, want 1 and 0", len(kept), len(rejected))
	}
}
