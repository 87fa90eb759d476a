package services

import (
	"testing"

	"signops-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validPhoto() models.ReccePhoto {
	return models.ReccePhoto{
		FileURL: "/uploads/recce/abc.jpg",
		Width:   decimal.NewFromInt(10),
		Height:  decimal.NewFromInt(4),
		Unit:    models.UnitFeet,
		Elements: []models.ElementLine{
			{ElementID: uuid.New(), ElementName: "Flex Board", Quantity: 1},
		},
	}
}

func TestValidateRecceSubmissionAccepts(t *testing.T) {
	photos := []models.ReccePhoto{validPhoto(), validPhoto()}
	if err := ValidateRecceSubmission(photos); err != nil {
		t.Errorf("expected valid submission, got %v", err)
	}
}

func TestValidateRecceSubmissionRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.ReccePhoto)
	}{
		{"missing file", func(p *models.ReccePhoto) { p.FileURL = "" }},
		{"missing width", func(p *models.ReccePhoto) { p.Width = decimal.Zero }},
		{"negative width", func(p *models.ReccePhoto) { p.Width = decimal.NewFromInt(-2) }},
		{"missing height", func(p *models.ReccePhoto) { p.Height = decimal.Zero }},
		{"no element", func(p *models.ReccePhoto) { p.Elements = nil }},
		{"zero quantity", func(p *models.ReccePhoto) { p.Elements[0].Quantity = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Second photo carries the defect; the first stays valid.
			photos := []models.ReccePhoto{validPhoto(), validPhoto()}
			tc.mutate(&photos[1])
			if err := ValidateRecceSubmission(photos); err == nil {
				t.Errorf("expected rejection for %s", tc.name)
			}
		})
	}
}

func TestValidateRecceSubmissionRejectsEmpty(t *testing.T) {
	if err := ValidateRecceSubmission(nil); err == nil {
		t.Error("expected rejection for empty photo list")
	}
}
