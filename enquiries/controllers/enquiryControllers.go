package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	indexing_repository "signops-backend/bleve/repositories"
	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/enquiries/repositories"
	"signops-backend/middleware"
	users_services "signops-backend/users/services"
	"signops-backend/utils"
	"signops-backend/utils/pagination"
	"signops-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnquiryController struct {
	EnquiryRepo repositories.EnquiryRepository
	DB          *gorm.DB
	Ctx         context.Context
	BleveRepo   indexing_repository.BleveRepositoryInterface
	Hub         *websocket.Hub
	RedisClient *redis.Client
}

type CreateEnquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

const maxEnquiryMessageLen = 5000

// CreateEnquiry accepts a public contact-form submission. No session is
// required; the route carries a per-IP rate limit instead.
func (ec *EnquiryController) CreateEnquiry(c *fiber.Ctx) error {
	var req CreateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "name, email and message are required",
			"error":   "missing_required_fields",
		})
	}
	if !users_services.ValidateEmailFormat(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email address", "error": "invalid_email"})
	}
	if len(req.Message) > maxEnquiryMessageLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Message is too long", "error": "message_too_long"})
	}

	enquiry := models.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   strings.TrimSpace(req.Phone),
		Message: req.Message,
		Status:  models.EnquiryNew,
	}

	created, err := ec.EnquiryRepo.CreateEnquiry(&enquiry)
	if err != nil {
		config.Logger.Error("Failed to store enquiry", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to submit enquiry", "error": err.Error()})
	}

	if err := ec.BleveRepo.IndexSingleEnquiry(*created); err != nil {
		config.Logger.Warn("Failed to index enquiry", zap.String("enquiry_id", created.ID.String()), zap.Error(err))
	}

	ec.Hub.Broadcast(websocket.Event{
		Type: websocket.EventEnquiryReceived,
		Payload: fiber.Map{
			"enquiry_id": created.ID,
			"name":       created.Name,
			"email":      created.Email,
		},
		Timestamp: time.Now(),
	})

	if opsInbox := config.GetEnv("OPS_INBOX_EMAIL"); opsInbox != "" {
		go func() {
			body := fmt.Sprintf(
				"<p>New enquiry from <strong>%s</strong> (%s, %s)</p><p>%s</p>",
				created.Name, created.Email, created.Phone, created.Message,
			)
			if err := utils.SendEmail(opsInbox, "New website enquiry", body); err != nil {
				config.Logger.Warn("Failed to send enquiry notification", zap.Error(err))
			}
		}()
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Enquiry submitted, we will get back to you shortly",
		"data":    fiber.Map{"id": created.ID},
		"error":   nil,
	})
}

func (ec *EnquiryController) GetFilteredEnquiries(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	offset := (params.Page - 1) * params.PageSize

	enquiries, total, err := ec.EnquiryRepo.GetFilteredEnquiries(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch enquiries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch enquiries", "error": err.Error()})
	}

	counts, err := ec.EnquiryRepo.CountByStatus()
	if err != nil {
		config.Logger.Warn("Failed to count enquiries by status", zap.Error(err))
	}

	meta := pagination.BuildPaginationMeta(c, params, total)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": enquiries,
		"meta": fiber.Map{
			"pagination":    meta,
			"status_counts": counts,
		},
	})
}

// RetrieveSingleEnquiry returns an enquiry; the first open moves a NEW
// enquiry to READ so the triage list reflects what has been seen.
func (ec *EnquiryController) RetrieveSingleEnquiry(c *fiber.Ctx) error {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	enquiry, err := ec.EnquiryRepo.GetEnquiryByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Enquiry not found", "error": "enquiry_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load enquiry", "error": err.Error()})
	}

	if enquiry.Status == models.EnquiryNew {
		enquiry.Status = models.EnquiryRead
		updatedBy := currentUser.Email
		enquiry.UpdatedBy = &updatedBy
		if _, err := ec.EnquiryRepo.UpdateEnquiry(enquiry); err != nil {
			config.Logger.Warn("Failed to mark enquiry read", zap.String("enquiry_id", enquiry.ID.String()), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Enquiry retrieved",
		"data":    enquiry,
		"error":   nil,
	})
}

type UpdateEnquiryRequest struct {
	Status *models.EnquiryStatus `json:"status"`
	Remark *string               `json:"remark"`
}

func validEnquiryStatus(status models.EnquiryStatus) bool {
	switch status {
	case models.EnquiryNew, models.EnquiryRead, models.EnquiryContacted, models.EnquiryResolved:
		return true
	}
	return false
}

func (ec *EnquiryController) UpdateEnquiry(c *fiber.Ctx) error {
	var req UpdateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	enquiry, err := ec.EnquiryRepo.GetEnquiryByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Enquiry not found", "error": "enquiry_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load enquiry", "error": err.Error()})
	}

	if req.Status != nil {
		if !validEnquiryStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unknown enquiry status", "error": "invalid_status"})
		}
		enquiry.Status = *req.Status
	}
	if req.Remark != nil {
		enquiry.Remark = req.Remark
	}
	updatedBy := currentUser.Email
	enquiry.UpdatedBy = &updatedBy

	updated, err := ec.EnquiryRepo.UpdateEnquiry(enquiry)
	if err != nil {
		config.Logger.Error("Failed to update enquiry", zap.String("enquiry_id", enquiry.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update enquiry", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Enquiry updated",
		"data":    updated,
		"error":   nil,
	})
}
