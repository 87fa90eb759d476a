package controllers

import (
	"context"

	indexing_repository "signops-backend/bleve/repositories"
	"signops-backend/clients/repositories"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ClientController struct {
	ClientRepo  repositories.ClientRepository
	DB          *gorm.DB
	Ctx         context.Context
	BleveRepo   indexing_repository.BleveRepositoryInterface
	RedisClient *redis.Client
}
