package services

import (
	"fmt"

	"signops-backend/db/models"
)

// ValidateRecceSubmission checks a recce submission before it is accepted.
// Every photo entry must carry a file reference, both dimensions, and at
// least one selected element.
func ValidateRecceSubmission(photos []models.ReccePhoto) error {
	if len(photos) == 0 {
		return fmt.Errorf("at least one recce photo is required")
	}

	for i, photo := range photos {
		if photo.FileURL == "" {
			return fmt.Errorf("photo %d: missing file", i+1)
		}
		if photo.Width.IsZero() || photo.Width.IsNegative() {
			return fmt.Errorf("photo %d: missing or invalid width", i+1)
		}
		if photo.Height.IsZero() || photo.Height.IsNegative() {
			return fmt.Errorf("photo %d: missing or invalid height", i+1)
		}
		if len(photo.Elements) == 0 {
			return fmt.Errorf("photo %d: no element selected", i+1)
		}
		for j, el := range photo.Elements {
			if el.Quantity <= 0 {
				return fmt.Errorf("photo %d, element %d: quantity must be positive", i+1, j+1)
			}
		}
	}
	return nil
}
