package controllers

import (
	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateStoreRequest represents the request body for manual store entry
type CreateStoreRequest struct {
	StoreCode  string `json:"store_code"`
	DealerCode string `json:"dealer_code"`
	StoreName  string `json:"store_name"`
	VendorCode string `json:"vendor_code"`
	ClientCode string `json:"client_code"`

	Zone     string `json:"zone"`
	State    string `json:"state"`
	District string `json:"district"`
	City     string `json:"city"`
	Area     string `json:"area"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`

	BoardType   string           `json:"board_type"`
	BoardWidth  *decimal.Decimal `json:"board_width"`
	BoardHeight *decimal.Decimal `json:"board_height"`
	Quantity    int              `json:"quantity"`

	PONumber string `json:"po_number"`
	POMonth  string `json:"po_month"`
}

// CreateStoreController creates a single store in UPLOADED status.
func (sc *StoreController) CreateStoreController(c *fiber.Ctx) error {
	var req CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.StoreCode == "" || req.StoreName == "" || req.ClientCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "store_code, store_name and client_code are required",
			"error":   "missing_required_fields",
		})
	}

	currentUser, _ := middleware.CurrentUser(c)
	createdBy := "system"
	if currentUser != nil {
		createdBy = currentUser.Email
	}

	// Resolve the client so the store carries both the code and the FK
	var clientID *uuid.UUID
	var client models.Client
	if err := sc.DB.Where("client_code = ?", req.ClientCode).First(&client).Error; err == nil {
		clientID = &client.ID
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	store := models.Store{
		ID:            uuid.New(),
		StoreCode:     req.StoreCode,
		DealerCode:    req.DealerCode,
		StoreName:     req.StoreName,
		VendorCode:    req.VendorCode,
		ClientID:      clientID,
		ClientCode:    req.ClientCode,
		Zone:          req.Zone,
		State:         req.State,
		District:      req.District,
		City:          req.City,
		Area:          req.Area,
		Address:       req.Address,
		Pincode:       req.Pincode,
		BoardType:     req.BoardType,
		BoardWidth:    req.BoardWidth,
		BoardHeight:   req.BoardHeight,
		Quantity:      quantity,
		PONumber:      req.PONumber,
		POMonth:       req.POMonth,
		CurrentStatus: models.StatusUploaded,
		CreatedBy:     createdBy,
	}

	if req.BoardWidth != nil && req.BoardHeight != nil {
		size := req.BoardWidth.Mul(*req.BoardHeight)
		store.BoardSize = &size
	}

	created, err := sc.StoreRepo.CreateStore(&store)
	if err != nil {
		config.Logger.Error("Failed to create store", zap.String("store_code", req.StoreCode), zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Failed to create store",
			"error":   err.Error(),
		})
	}

	sc.afterStoreMutation(created)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store created",
		"data":    created,
	})
}
