package services

import (
	"testing"

	"signops-backend/db/models"
)

func installPhotos(n int) []models.InstallationPhoto {
	photos := make([]models.InstallationPhoto, n)
	for i := range photos {
		photos[i] = models.InstallationPhoto{
			FileURL:         "/uploads/installation/done.jpg",
			ReccePhotoIndex: i,
		}
	}
	return photos
}

func TestInstallationBlockedUntilCountsMatch(t *testing.T) {
	reccePhotoCount := 3

	for uploaded := 0; uploaded < reccePhotoCount; uploaded++ {
		if err := ValidateInstallationSubmission(installPhotos(uploaded), reccePhotoCount); err == nil {
			t.Errorf("submission with %d of %d photos should be blocked", uploaded, reccePhotoCount)
		}
	}

	if err := ValidateInstallationSubmission(installPhotos(reccePhotoCount), reccePhotoCount); err != nil {
		t.Errorf("submission with matching counts should pass, got %v", err)
	}

	if err := ValidateInstallationSubmission(installPhotos(reccePhotoCount+1), reccePhotoCount); err == nil {
		t.Error("submission with excess photos should be blocked")
	}
}

func TestInstallationIndexContract(t *testing.T) {
	photos := installPhotos(2)
	photos[1].ReccePhotoIndex = 0 // duplicate fulfillment
	if err := ValidateInstallationSubmission(photos, 2); err == nil {
		t.Error("duplicate recce photo index should be rejected")
	}

	photos = installPhotos(2)
	photos[1].ReccePhotoIndex = 5 // out of range
	if err := ValidateInstallationSubmission(photos, 2); err == nil {
		t.Error("out-of-range recce photo index should be rejected")
	}

	photos = installPhotos(2)
	photos[0].FileURL = ""
	if err := ValidateInstallationSubmission(photos, 2); err == nil {
		t.Error("missing file should be rejected")
	}
}

func TestInstallationAgainstNoRecce(t *testing.T) {
	if err := ValidateInstallationSubmission(installPhotos(0), 0); err == nil {
		t.Error("installation against zero recce photos should be rejected")
	}
}
