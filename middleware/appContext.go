package middleware

import (
	"context"

	"signops-backend/token"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AppContext bundles the dependencies shared by the auth middleware.
type AppContext struct {
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
	DB          *gorm.DB
}
