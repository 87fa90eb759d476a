package services

import (
	"testing"

	"signops-backend/db/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func TestValidateGSTNumber(t *testing.T) {
	valid := []string{
		"22AAAAA0000A1Z5",
		"27ABCDE1234F2Z6",
		"09AAACH7409R1ZZ",
		"", // optional
	}
	for _, gst := range valid {
		if err := ValidateGSTNumber(gst); err != nil {
			t.Errorf("ValidateGSTNumber(%q) = %v, want nil", gst, err)
		}
	}

	invalid := []string{
		"1234ABCDE",
		"22AAAAA0000A1X5",  // missing Z marker
		"2AAAAAA0000A1Z5",  // bad state code
		"22AAAAA0000A1Z55", // too long
		"22aaaaa0000a1z",   // too short
	}
	for _, gst := range invalid {
		if err := ValidateGSTNumber(gst); err == nil {
			t.Errorf("ValidateGSTNumber(%q) = nil, want error", gst)
		}
	}
}

func TestValidateGSTNumberNormalizesCase(t *testing.T) {
	if err := ValidateGSTNumber(" 22aaaaa0000a1z5 "); err != nil {
		t.Errorf("lowercase GST with padding should normalize, got %v", err)
	}
}

func TestValidateClient(t *testing.T) {
	client := &models.Client{
		ClientCode: "ACME",
		ClientName: "Acme Retail",
		GSTNumber:  "22AAAAA0000A1Z5",
	}
	if err := ValidateClient(client); err != nil {
		t.Fatalf("valid client rejected: %v", err)
	}

	client.ClientCode = "  "
	if err := ValidateClient(client); err == nil {
		t.Error("blank client code accepted")
	}
	client.ClientCode = "ACME"

	client.ClientName = ""
	if err := ValidateClient(client); err == nil {
		t.Error("blank client name accepted")
	}
	client.ClientName = "Acme Retail"

	client.Elements = datatypes.NewJSONType([]models.ClientElement{
		{ElementName: "Vinyl", CustomRate: decimal.NewFromInt(-5)},
	})
	if err := ValidateClient(client); err == nil {
		t.Error("negative override rate accepted")
	}
}
