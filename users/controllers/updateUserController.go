package controllers

import (
	"errors"

	"signops-backend/config"
	"signops-backend/middleware"
	"signops-backend/users/repositories"
	"signops-backend/users/services"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateUserRequest is a partial user edit. A nil field is left unchanged.
type UpdateUserRequest struct {
	Name     *string      `json:"name"`
	Phone    *string      `json:"phone"`
	Password *string      `json:"password"`
	IsActive *bool        `json:"is_active"`
	RoleIDs  *[]uuid.UUID `json:"role_ids"`
}

func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
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

	user, err := uc.UserRepo.GetUserByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found", "error": "user_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load user", "error": err.Error()})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Password != nil {
		if validationError := services.ValidatePassword(*req.Password); validationError != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation error: " + validationError,
				"data":    nil,
				"error":   validationError,
			})
		}
		hashed, err := repositories.HashPassword(*req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password", "error": err.Error()})
		}
		user.Password = hashed
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	updatedBy := currentUser.Email
	user.UpdatedBy = &updatedBy

	if req.RoleIDs != nil {
		if err := uc.UserRepo.ReplaceRoles(user, *req.RoleIDs); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Failed to update user roles",
				"data":    nil,
				"error":   err.Error(),
			})
		}
	}

	updated, err := uc.UserRepo.UpdateUser(user)
	if err != nil {
		config.Logger.Error("Failed to update user", zap.String("user_id", user.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while updating the user",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "users")
	if uc.BleveRepo != nil {
		if err := uc.BleveRepo.UpdateUser(*updated); err != nil {
			config.Logger.Warn("Failed to update user search index", zap.String("user_id", updated.ID.String()), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

// DeactivateUser disables an account. Accounts are never hard-deleted so
// workflow history keeps resolving.
func (uc *UserController) DeactivateUser(c *fiber.Ctx) error {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "missing_user_context"})
	}

	id := c.Params("id")
	if id == currentUser.ID.String() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "You cannot deactivate your own account",
			"error":   "self_deactivation",
		})
	}

	if err := uc.UserRepo.DeactivateUser(id, currentUser.Email); err != nil {
		config.Logger.Error("Failed to deactivate user", zap.String("user_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to deactivate user",
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "users")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deactivated",
		"data":    nil,
		"error":   nil,
	})
}
