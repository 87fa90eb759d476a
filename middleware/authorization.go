package middleware

import (
	"time"

	"signops-backend/config"
	"signops-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	accessTokenCookie = "access_token"
	sessionCookie     = "session_id"
	accessTokenTTL    = 15 * time.Minute
	sessionTTL        = 7 * 24 * time.Hour
	sessionKeyPrefix  = "session:"
)

// ProtectedRoute verifies the access token cookie and falls back to the
// session cookie, rotating it on use. Sessions are single-use refresh tokens
// stored in Redis keyed by the raw token string.
func ProtectedRoute(ctx *AppContext) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies(accessTokenCookie)
		sessionToken := c.Cookies(sessionCookie)

		if accessToken != "" {
			payload, err := ctx.PasetoMaker.VerifyToken(accessToken)
			if err == nil {
				c.Locals("user", payload)
				return c.Next()
			}
			// Log invalid access token internally, but don't expose details to client
			config.Logger.Debug("Invalid access token encountered", zap.Error(err))
		}

		if sessionToken == "" {
			config.Logger.Debug("No session token provided in request")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
				"error":   "Authentication required",
			})
		}

		sessionPayload, err := ctx.PasetoMaker.VerifyToken(sessionToken)
		if err != nil {
			config.Logger.Error("Session token verification failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
				"error":   "Session expired or invalid. Please log in again.",
			})
		}

		userID, err := ctx.RedisClient.Get(ctx.Ctx, sessionKeyPrefix+sessionToken).Result()
		if err == redis.Nil {
			config.Logger.Warn("Session token not found in Redis",
				zap.String("payload_id", sessionPayload.ID.String()),
				zap.String("email", sessionPayload.Email),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
				"error":   "Session invalid. Please log in again.",
			})
		} else if err != nil {
			config.Logger.Error("Error accessing Redis for session validation",
				zap.String("email", sessionPayload.Email),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong",
				"error":   "An internal server error occurred.",
			})
		}

		// Single-use rotation: invalidate the old session before issuing a new one
		if err := ctx.RedisClient.Del(ctx.Ctx, sessionKeyPrefix+sessionToken).Err(); err != nil {
			config.Logger.Warn("Error deleting old session from Redis",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}

		newAccessToken, err := ctx.PasetoMaker.CreateToken(sessionPayload.UserID, sessionPayload.Email, accessTokenTTL)
		if err != nil {
			config.Logger.Error("Could not generate new access token", zap.String("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong",
				"error":   "An internal server error occurred.",
			})
		}

		newSessionToken, err := ctx.PasetoMaker.CreateToken(sessionPayload.UserID, sessionPayload.Email, sessionTTL)
		if err != nil {
			config.Logger.Error("Could not generate new session token", zap.String("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong",
				"error":   "An internal server error occurred.",
			})
		}

		if err := ctx.RedisClient.Set(ctx.Ctx, sessionKeyPrefix+newSessionToken, userID, sessionTTL).Err(); err != nil {
			config.Logger.Error("Error storing new session in Redis", zap.String("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong",
				"error":   "An internal server error occurred.",
			})
		}

		SetAuthCookies(c, newAccessToken, newSessionToken)

		c.Locals("user", sessionPayload)
		return c.Next()
	}
}

// IssueSession creates a fresh access/session token pair for the user,
// stores the session in Redis and writes both cookies. Called on login.
func IssueSession(ctx *AppContext, c *fiber.Ctx, userID uuid.UUID, email string) error {
	accessToken, err := ctx.PasetoMaker.CreateToken(userID, email, accessTokenTTL)
	if err != nil {
		return err
	}

	sessionToken, err := ctx.PasetoMaker.CreateToken(userID, email, sessionTTL)
	if err != nil {
		return err
	}

	if err := ctx.RedisClient.Set(ctx.Ctx, sessionKeyPrefix+sessionToken, userID.String(), sessionTTL).Err(); err != nil {
		return err
	}

	SetAuthCookies(c, accessToken, sessionToken)
	return nil
}

// RevokeSession drops the Redis session and expires both cookies.
func RevokeSession(ctx *AppContext, c *fiber.Ctx) {
	if sessionToken := c.Cookies(sessionCookie); sessionToken != "" {
		if err := ctx.RedisClient.Del(ctx.Ctx, sessionKeyPrefix+sessionToken).Err(); err != nil {
			config.Logger.Warn("Failed to delete session on logout", zap.Error(err))
		}
	}
	ClearAuthCookies(c)
}

// SetAuthCookies writes the access and session cookies with matching TTLs.
func SetAuthCookies(c *fiber.Ctx, accessToken, sessionToken string) {
	secure := config.GetEnv("COOKIE_SECURE") == "true"
	domain := config.GetEnvOrDefault("COOKIE_DOMAIN", "localhost")

	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Expires:  time.Now().Add(accessTokenTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
		Domain:   domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sessionToken,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
		Domain:   domain,
	})
}

// ClearAuthCookies expires both auth cookies on logout.
func ClearAuthCookies(c *fiber.Ctx) {
	domain := config.GetEnvOrDefault("COOKIE_DOMAIN", "localhost")
	for _, name := range []string{accessTokenCookie, sessionCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Path:     "/",
			Domain:   domain,
		})
	}
}

// CurrentPayload returns the verified token payload set by ProtectedRoute.
func CurrentPayload(c *fiber.Ctx) (*token.Payload, bool) {
	payload, ok := c.Locals("user").(*token.Payload)
	return payload, ok
}
