package services

import (
	"testing"

	"signops-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func quotableStore(elementID uuid.UUID) *models.Store {
	return &models.Store{
		StoreCode:  "ST-001",
		StoreName:  "MG Road",
		ClientCode: "ACME",
		Recce: datatypes.NewJSONType(models.RecceDetail{
			Photos: []models.ReccePhoto{
				{
					FileURL: "public/photos/a.jpg",
					Width:   decimal.NewFromInt(10),
					Height:  decimal.NewFromInt(4),
					Unit:    models.UnitFeet,
					Elements: []models.ElementLine{
						{ElementID: elementID, ElementName: "Flex Board", Quantity: 2},
					},
				},
			},
		}),
	}
}

func TestBuildRFQDataStandardRate(t *testing.T) {
	elementID := uuid.New()
	store := quotableStore(elementID)
	elements := []models.Element{
		{ID: elementID, Name: "Flex Board", StandardRate: decimal.NewFromInt(50)},
	}

	data := BuildRFQData(store, nil, elements)

	if len(data.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(data.Lines))
	}
	line := data.Lines[0]
	if line.RateSource != "standard" {
		t.Errorf("rate source = %q, want standard", line.RateSource)
	}
	// 10ft x 4ft x rate 50 x qty 2
	if line.Amount != "4000.00" {
		t.Errorf("line amount = %s, want 4000.00", line.Amount)
	}
	if data.Subtotal != "4000.00" {
		t.Errorf("subtotal = %s, want 4000.00", data.Subtotal)
	}
	if data.GSTAmount != "720.00" {
		t.Errorf("gst = %s, want 720.00", data.GSTAmount)
	}
	if data.Total != "4720.00" {
		t.Errorf("total = %s, want 4720.00", data.Total)
	}
}

func TestBuildRFQDataClientOverrideWins(t *testing.T) {
	elementID := uuid.New()
	store := quotableStore(elementID)
	elements := []models.Element{
		{ID: elementID, Name: "Flex Board", StandardRate: decimal.NewFromInt(50)},
	}
	client := &models.Client{
		ClientName: "Acme Retail",
		Elements: datatypes.NewJSONType([]models.ClientElement{
			{ElementID: elementID, ElementName: "Flex Board", CustomRate: decimal.NewFromInt(40)},
		}),
	}

	data := BuildRFQData(store, client, elements)

	line := data.Lines[0]
	if line.RateSource != "client" {
		t.Errorf("rate source = %q, want client", line.RateSource)
	}
	if line.Rate != "40.00" {
		t.Errorf("rate = %s, want 40.00", line.Rate)
	}
	if data.Subtotal != "3200.00" {
		t.Errorf("subtotal = %s, want 3200.00", data.Subtotal)
	}
}

func TestBuildRFQDataOverrideForOtherElementIgnored(t *testing.T) {
	elementID := uuid.New()
	store := quotableStore(elementID)
	elements := []models.Element{
		{ID: elementID, Name: "Flex Board", StandardRate: decimal.NewFromInt(50)},
	}
	client := &models.Client{
		Elements: datatypes.NewJSONType([]models.ClientElement{
			{ElementID: uuid.New(), ElementName: "Vinyl", CustomRate: decimal.NewFromInt(5)},
		}),
	}

	data := BuildRFQData(store, client, elements)

	if data.Lines[0].RateSource != "standard" {
		t.Errorf("unrelated override changed rate source to %q", data.Lines[0].RateSource)
	}
	if data.Lines[0].Rate != "50.00" {
		t.Errorf("rate = %s, want 50.00", data.Lines[0].Rate)
	}
}
