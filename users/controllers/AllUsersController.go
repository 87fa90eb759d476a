package controllers

import (
	"context"

	indexing_repository "signops-backend/bleve/repositories"
	stores_repositories "signops-backend/stores/repositories"
	"signops-backend/users/repositories"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type UserController struct {
	UserRepo    repositories.UserRepository
	StoreRepo   stores_repositories.StoreRepository
	DB          *gorm.DB
	Ctx         context.Context
	BleveRepo   indexing_repository.BleveRepositoryInterface
	RedisClient *redis.Client
}
