package controllers

import (
	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/users/repositories"
	"signops-backend/users/services"
	"signops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	UserRepo   repositories.UserRepository
	AppCtx     *middleware.AppContext
	OtpService services.OtpService
}

// LoginUser authenticates with email and password. Users on authenticator
// login must also supply a TOTP code; the first call without one reports
// requires_totp so the frontend can prompt.
func (ac *AuthController) LoginUser(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		TOTPCode string `json:"totp_code"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing login request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	user, err := ac.UserRepo.GetUserByEmail(req.Email)
	if err != nil || !repositories.CheckPasswordHash(req.Password, user.Password) {
		if err != nil {
			config.Logger.Warn("Login attempt: user not found or database error",
				zap.String("email", req.Email),
				zap.Error(err),
			)
		} else {
			config.Logger.Warn("Login attempt: invalid password", zap.String("email", req.Email))
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"data":    nil,
			"error":   "Invalid email or password.",
		})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Account disabled",
			"data":    nil,
			"error":   "This account has been deactivated.",
		})
	}

	if user.AuthMethod == models.AuthMethodAuthenticator {
		if req.TOTPCode == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message": "Authenticator code required",
				"data":    fiber.Map{"requires_totp": true},
				"error":   nil,
			})
		}
		if !ac.OtpService.ValidateTOTPCode(user, req.TOTPCode) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
				"data":    nil,
				"error":   "Invalid authenticator code.",
			})
		}
	}

	if err := middleware.IssueSession(ac.AppCtx, c, user.ID, user.Email); err != nil {
		config.Logger.Error("Failed to issue session", zap.String("email", user.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	now := utils.Today()
	user.LastLoginAt = &now
	if _, err := ac.UserRepo.UpdateUser(user); err != nil {
		config.Logger.Warn("Failed to record last login", zap.String("email", user.Email), zap.Error(err))
	}

	config.Logger.Info("User logged in", zap.String("email", user.Email))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"data": fiber.Map{
			"user":       user,
			"navigation": services.BuildNavigation(user),
		},
		"error": nil,
	})
}

// LogoutUser revokes the session and clears the auth cookies.
func (ac *AuthController) LogoutUser(c *fiber.Ctx) error {
	middleware.RevokeSession(ac.AppCtx, c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
		"data":    nil,
		"error":   nil,
	})
}

// GetCurrentUser returns the authenticated user with roles and the sidebar
// entries their permissions allow.
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	user, err := ac.UserRepo.GetUserByID(payload.UserID.String())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"data":    nil,
			"error":   "The authenticated user no longer exists.",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Current user retrieved",
		"data": fiber.Map{
			"user":       user,
			"navigation": services.BuildNavigation(user),
		},
		"error": nil,
	})
}

// GetNavigation returns only the sidebar entries for the current user.
func (ac *AuthController) GetNavigation(c *fiber.Ctx) error {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	user, err := ac.UserRepo.GetUserByID(payload.UserID.String())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"data":    nil,
			"error":   "The authenticated user no longer exists.",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Navigation retrieved",
		"data":    services.BuildNavigation(user),
		"error":   nil,
	})
}

// SetupTOTP starts authenticator enrollment for the current user.
func (ac *AuthController) SetupTOTP(c *fiber.Ctx) error {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "Authentication required"})
	}

	user, err := ac.UserRepo.GetUserByID(payload.UserID.String())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found", "error": "user_not_found"})
	}

	setup, err := ac.OtpService.GenerateTOTPSecret(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Setup failed", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Authenticator setup initiated",
		"data": fiber.Map{
			"qr_code_url": setup.QRCodeURL,
			"manual_key":  setup.ManualKey,
		},
		"error": nil,
	})
}

// ConfirmTOTP completes authenticator enrollment with a verification code.
func (ac *AuthController) ConfirmTOTP(c *fiber.Ctx) error {
	type ConfirmRequest struct {
		TOTPCode string `json:"totp_code"`
	}

	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request", "error": "Invalid request format."})
	}

	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "error": "Authentication required"})
	}

	user, err := ac.UserRepo.GetUserByID(payload.UserID.String())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found", "error": "user_not_found"})
	}

	if err := ac.OtpService.ConfirmTOTPSetup(user, req.TOTPCode); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Confirmation failed", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Authenticator enabled",
		"data":    fiber.Map{"auth_method": user.AuthMethod},
		"error":   nil,
	})
}
