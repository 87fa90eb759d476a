package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// A Store payload must survive a decode/encode cycle without losing fields an
// edit form never touched.
func TestStoreJSONRoundTrip(t *testing.T) {
	rate := decimal.NewFromInt(55)
	width := decimal.NewFromFloat(12.5)
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	assignee := &UserRef{ID: uuid.New(), Name: "Ravi Kumar", Email: "ravi@signops.local"}

	original := Store{
		ID:            uuid.New(),
		StoreCode:     "ST-1042",
		DealerCode:    "DLR-77",
		StoreName:     "Sharma Electronics",
		VendorCode:    "VND-3",
		ClientCode:    "CL-009",
		Zone:          "North",
		State:         "Punjab",
		City:          "Ludhiana",
		Address:       "14 GT Road",
		Pincode:       "141001",
		BoardType:     "Flex",
		BoardWidth:    &width,
		Quantity:      2,
		PONumber:      "PO-2026-112",
		POMonth:       "2026-03",
		BoardRate:     &rate,
		CurrentStatus: StatusRecceSubmitted,
		Workflow: datatypes.NewJSONType(WorkflowAssignment{
			RecceAssignedTo: assignee,
			Priority:        PriorityHigh,
		}),
		Recce: datatypes.NewJSONType(RecceDetail{
			AssignedDate:  &now,
			SubmittedDate: &now,
			Notes:         "north wall, old board to be removed",
			Photos: []ReccePhoto{
				{
					FileURL: "/uploads/recce/1.jpg",
					Width:   decimal.NewFromInt(10),
					Height:  decimal.NewFromInt(4),
					Unit:    UnitFeet,
					Elements: []ElementLine{
						{ElementID: uuid.New(), ElementName: "Flex Board", Quantity: 1},
					},
				},
			},
			SubmittedBy: assignee,
		}),
		CreatedBy: "admin@signops.local",
	}

	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Store
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Simulate an edit form touching one field, then re-serializing for a PUT
	decoded.InvoiceNumber = "INV-889"

	reEncoded, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}

	var final Store
	if err := json.Unmarshal(reEncoded, &final); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}

	if final.StoreCode != original.StoreCode ||
		final.DealerCode != original.DealerCode ||
		final.PONumber != original.PONumber ||
		final.POMonth != original.POMonth ||
		final.CurrentStatus != original.CurrentStatus {
		t.Error("scalar fields lost in round trip")
	}
	if final.BoardRate == nil || !final.BoardRate.Equal(rate) {
		t.Error("board rate lost in round trip")
	}
	if final.BoardWidth == nil || !final.BoardWidth.Equal(width) {
		t.Error("board width lost in round trip")
	}

	wf := final.Workflow.Data()
	if wf.Priority != PriorityHigh || wf.RecceAssignedTo == nil || wf.RecceAssignedTo.Email != assignee.Email {
		t.Error("workflow block lost in round trip")
	}

	recce := final.Recce.Data()
	if len(recce.Photos) != 1 {
		t.Fatal("recce photos lost in round trip")
	}
	photo := recce.Photos[0]
	if !photo.Width.Equal(decimal.NewFromInt(10)) || photo.Unit != UnitFeet || len(photo.Elements) != 1 {
		t.Error("recce photo measurements lost in round trip")
	}
	if recce.Notes != "north wall, old board to be removed" {
		t.Error("recce notes lost in round trip")
	}

	if final.InvoiceNumber != "INV-889" {
		t.Error("edited field not preserved")
	}
}
