package controllers

import (
	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/users/services"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUserRequest creates a user with role assignments by ID.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    *string     `json:"phone"`
	Password string      `json:"password"`
	RoleIDs  []uuid.UUID `json:"role_ids"`
}

func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	roles, err := uc.UserRepo.GetRolesByIDs(req.RoleIDs)
	if err != nil || len(roles) != len(req.RoleIDs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "One or more roles do not exist",
			"data":    nil,
			"error":   "invalid_role_ids",
		})
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Roles:     roles,
		IsActive:  true,
		CreatedBy: currentUser.Email,
	}

	if validationError := services.ValidateUser(&user); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}
	if validationError := services.ValidatePassword(user.Password); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}
	if validationError := services.ValidateEmail(user.Email, uc.UserRepo); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	createdUser, err := uc.UserRepo.CreateUser(&user)
	if err != nil {
		config.Logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the user",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "users")

	if uc.BleveRepo != nil {
		if err := uc.BleveRepo.IndexSingleUser(*createdUser); err != nil {
			config.Logger.Warn("Failed to index created user",
				zap.String("user_id", createdUser.ID.String()),
				zap.Error(err),
			)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    createdUser,
		"error":   nil,
	})
}
