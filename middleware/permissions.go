package middleware

import (
	"signops-backend/config"
	"signops-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireModuleView gates a route group on the caller holding a view grant
// for the module. Write grants are stored on roles but not enforced per
// action; view is the only gate, matching how the dashboard consumes the map.
func RequireModuleView(ctx *AppContext, module models.Module) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, ok := CurrentPayload(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
				"error":   "Authentication required",
			})
		}

		var user models.User
		if err := ctx.DB.Preload("Roles").Where("id = ?", payload.UserID).First(&user).Error; err != nil {
			config.Logger.Error("Failed to load user for permission check",
				zap.String("user_id", payload.UserID.String()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
				"error":   "Authentication required",
			})
		}

		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
				"error":   "Account is deactivated",
			})
		}

		if !user.CanView(module) {
			config.Logger.Warn("Module access denied",
				zap.String("user_id", user.ID.String()),
				zap.String("module", string(module)),
			)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
				"error":   "You do not have access to this module",
			})
		}

		c.Locals("currentUser", &user)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by RequireModuleView, if any.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("currentUser").(*models.User)
	return user, ok
}
