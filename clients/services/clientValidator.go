package services

import (
	"errors"
	"regexp"
	"strings"

	"signops-backend/db/models"
)

// Indian GSTIN: 2-digit state code, PAN, entity number, the literal Z,
// and a checksum character.
var gstPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

func ValidateGSTNumber(gst string) error {
	if gst == "" {
		return nil // optional field
	}
	if !gstPattern.MatchString(strings.ToUpper(strings.TrimSpace(gst))) {
		return errors.New("invalid GST number format")
	}
	return nil
}

func ValidateClient(client *models.Client) error {
	if strings.TrimSpace(client.ClientCode) == "" {
		return errors.New("client code is required")
	}
	if strings.TrimSpace(client.ClientName) == "" {
		return errors.New("client name is required")
	}
	if err := ValidateGSTNumber(client.GSTNumber); err != nil {
		return err
	}
	for _, el := range client.Elements.Data() {
		if el.CustomRate.IsNegative() {
			return errors.New("element override rates cannot be negative")
		}
	}
	return nil
}
