package services

import (
	"testing"

	"signops-backend/db/models"

	"gorm.io/datatypes"
)

func TestBuildCertificateDataPhotoPairing(t *testing.T) {
	store := &models.Store{
		StoreCode: "ST-001",
		StoreName: "MG Road",
		Recce: datatypes.NewJSONType(models.RecceDetail{
			Photos: []models.ReccePhoto{
				{FileURL: "public/photos/recce-0.jpg"},
				{FileURL: "public/photos/recce-1.jpg"},
				{FileURL: "public/photos/recce-2.jpg"},
			},
		}),
		Installation: datatypes.NewJSONType(models.InstallationDetail{
			Photos: []models.InstallationPhoto{
				{FileURL: "public/photos/install-0.jpg", ReccePhotoIndex: 0},
				{FileURL: "public/photos/install-1.jpg", ReccePhotoIndex: 1},
				{FileURL: "public/photos/install-2.jpg", ReccePhotoIndex: 2},
			},
		}),
	}

	data := BuildCertificateData(store)

	if len(data.Photos) != 3 {
		t.Fatalf("expected 3 photo pairs, got %d", len(data.Photos))
	}
	want := []string{
		"public/photos/recce-0.jpg",
		"public/photos/recce-1.jpg",
		"public/photos/recce-2.jpg",
	}
	for i, pair := range data.Photos {
		if pair.RecceURL != want[i] {
			t.Errorf("photo %d paired with %q, want %q", i, pair.RecceURL, want[i])
		}
	}
}

func TestBuildCertificateDataOutOfRangeIndexLeavesRecceEmpty(t *testing.T) {
	store := &models.Store{
		Recce: datatypes.NewJSONType(models.RecceDetail{
			Photos: []models.ReccePhoto{
				{FileURL: "public/photos/recce-0.jpg"},
			},
		}),
		Installation: datatypes.NewJSONType(models.InstallationDetail{
			Photos: []models.InstallationPhoto{
				{FileURL: "public/photos/install-0.jpg", ReccePhotoIndex: 3},
			},
		}),
	}

	data := BuildCertificateData(store)

	if len(data.Photos) != 1 {
		t.Fatalf("expected 1 photo pair, got %d", len(data.Photos))
	}
	if data.Photos[0].RecceURL != "" {
		t.Errorf("out-of-range index paired with %q, want empty", data.Photos[0].RecceURL)
	}
	if data.Photos[0].InstallationURL != "public/photos/install-0.jpg" {
		t.Errorf("installation url = %q", data.Photos[0].InstallationURL)
	}
}
