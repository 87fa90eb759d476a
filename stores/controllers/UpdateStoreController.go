package controllers

import (
	"signops-backend/config"
	"signops-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UpdateStoreRequest is a partial update of a store's identity, location and
// commercials. Workflow fields are never writable here; those move only
// through the workflow endpoints.
type UpdateStoreRequest struct {
	StoreName  *string `json:"store_name"`
	DealerCode *string `json:"dealer_code"`
	VendorCode *string `json:"vendor_code"`

	Zone      *string  `json:"zone"`
	State     *string  `json:"state"`
	District  *string  `json:"district"`
	City      *string  `json:"city"`
	Area      *string  `json:"area"`
	Address   *string  `json:"address"`
	Pincode   *string  `json:"pincode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	BoardType   *string          `json:"board_type"`
	BoardWidth  *decimal.Decimal `json:"board_width"`
	BoardHeight *decimal.Decimal `json:"board_height"`
	Quantity    *int             `json:"quantity"`

	PONumber      *string          `json:"po_number"`
	POMonth       *string          `json:"po_month"`
	InvoiceNumber *string          `json:"invoice_number"`
	TotalCost     *decimal.Decimal `json:"total_cost"`

	BoardRate          *decimal.Decimal `json:"board_rate"`
	TotalBoardCost     *decimal.Decimal `json:"total_board_cost"`
	AngleCharge        *decimal.Decimal `json:"angle_charge"`
	ScaffoldingCharge  *decimal.Decimal `json:"scaffolding_charge"`
	TransportCharge    *decimal.Decimal `json:"transport_charge"`
	FlangesCharge      *decimal.Decimal `json:"flanges_charge"`
	LollipopCharge     *decimal.Decimal `json:"lollipop_charge"`
	OneWayVisionCharge *decimal.Decimal `json:"one_way_vision_charge"`
	SunboardCharge     *decimal.Decimal `json:"sunboard_charge"`
}

// UpdateStoreController applies a partial edit to a store.
func (sc *StoreController) UpdateStoreController(c *fiber.Ctx) error {
	var req UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	store, err := sc.loadStoreOr404(c)
	if err != nil {
		return err
	}

	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&store.StoreName, req.StoreName)
	setStr(&store.DealerCode, req.DealerCode)
	setStr(&store.VendorCode, req.VendorCode)
	setStr(&store.Zone, req.Zone)
	setStr(&store.State, req.State)
	setStr(&store.District, req.District)
	setStr(&store.City, req.City)
	setStr(&store.Area, req.Area)
	setStr(&store.Address, req.Address)
	setStr(&store.Pincode, req.Pincode)
	setStr(&store.BoardType, req.BoardType)
	setStr(&store.PONumber, req.PONumber)
	setStr(&store.POMonth, req.POMonth)
	setStr(&store.InvoiceNumber, req.InvoiceNumber)

	if req.Latitude != nil {
		store.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		store.Longitude = req.Longitude
	}
	if req.BoardWidth != nil {
		store.BoardWidth = req.BoardWidth
	}
	if req.BoardHeight != nil {
		store.BoardHeight = req.BoardHeight
	}
	if store.BoardWidth != nil && store.BoardHeight != nil {
		size := store.BoardWidth.Mul(*store.BoardHeight)
		store.BoardSize = &size
	}
	if req.Quantity != nil && *req.Quantity > 0 {
		store.Quantity = *req.Quantity
	}
	if req.TotalCost != nil {
		store.TotalCost = req.TotalCost
	}
	if req.BoardRate != nil {
		store.BoardRate = req.BoardRate
	}
	if req.TotalBoardCost != nil {
		store.TotalBoardCost = req.TotalBoardCost
	}
	if req.AngleCharge != nil {
		store.AngleCharge = req.AngleCharge
	}
	if req.ScaffoldingCharge != nil {
		store.ScaffoldingCharge = req.ScaffoldingCharge
	}
	if req.TransportCharge != nil {
		store.TransportCharge = req.TransportCharge
	}
	if req.FlangesCharge != nil {
		store.FlangesCharge = req.FlangesCharge
	}
	if req.LollipopCharge != nil {
		store.LollipopCharge = req.LollipopCharge
	}
	if req.OneWayVisionCharge != nil {
		store.OneWayVisionCharge = req.OneWayVisionCharge
	}
	if req.SunboardCharge != nil {
		store.SunboardCharge = req.SunboardCharge
	}

	updatedBy := currentUser.Email
	store.UpdatedBy = &updatedBy

	updated, err := sc.StoreRepo.UpdateStore(store)
	if err != nil {
		config.Logger.Error("Failed to update store", zap.String("store_id", store.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update store", "error": err.Error()})
	}

	sc.afterStoreMutation(updated)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Store updated",
		"data":    updated,
	})
}
