package services

import (
	"fmt"

	"signops-backend/db/models"
)

// ValidateInstallationSubmission enforces the positional 1:1 contract between
// recce and installation photos: exactly one installation photo per recce
// photo, each addressing a distinct recce photo index.
func ValidateInstallationSubmission(installPhotos []models.InstallationPhoto, reccePhotoCount int) error {
	if reccePhotoCount == 0 {
		return fmt.Errorf("store has no recce photos to install against")
	}
	if len(installPhotos) < reccePhotoCount {
		return fmt.Errorf("installation incomplete: %d of %d photos uploaded", len(installPhotos), reccePhotoCount)
	}
	if len(installPhotos) > reccePhotoCount {
		return fmt.Errorf("too many installation photos: expected %d, got %d", reccePhotoCount, len(installPhotos))
	}

	seen := make(map[int]bool, len(installPhotos))
	for i, photo := range installPhotos {
		if photo.FileURL == "" {
			return fmt.Errorf("installation photo %d: missing file", i+1)
		}
		if photo.ReccePhotoIndex < 0 || photo.ReccePhotoIndex >= reccePhotoCount {
			return fmt.Errorf("installation photo %d: recce photo index %d out of range", i+1, photo.ReccePhotoIndex)
		}
		if seen[photo.ReccePhotoIndex] {
			return fmt.Errorf("installation photo %d: recce photo index %d already fulfilled", i+1, photo.ReccePhotoIndex)
		}
		seen[photo.ReccePhotoIndex] = true
	}
	return nil
}
