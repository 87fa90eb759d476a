package controllers

import (
	"context"
	"errors"

	indexing_repository "signops-backend/bleve/repositories"
	"signops-backend/config"
	"signops-backend/db/models"
	"signops-backend/stores/repositories"
	users_repositories "signops-backend/users/repositories"
	"signops-backend/utils"
	"signops-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StoreController struct {
	StoreRepo   repositories.StoreRepository
	UserRepo    users_repositories.UserRepository
	DB          *gorm.DB
	Ctx         context.Context
	BleveRepo   indexing_repository.BleveRepositoryInterface
	Hub         *websocket.Hub
	AsynqClient *asynq.Client
	RedisClient *redis.Client
	FileStorage *utils.LocalFileStorage
}

// userRefOf builds the denormalized reference embedded in workflow JSON.
func userRefOf(user *models.User) *models.UserRef {
	return &models.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
}

// loadStoreOr404 fetches a store by the :id param, writing the error
// response itself when the store cannot be served.
func (sc *StoreController) loadStoreOr404(c *fiber.Ctx) (*models.Store, error) {
	id := c.Params("id")
	store, err := sc.StoreRepo.GetStoreByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Store not found",
				"error":   "store_not_found",
			})
		}
		config.Logger.Error("Failed to load store", zap.String("id", id), zap.Error(err))
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load store",
			"error":   err.Error(),
		})
	}
	return store, nil
}

// afterStoreMutation refreshes the caches and search index once a store
// change is committed.
func (sc *StoreController) afterStoreMutation(store *models.Store) {
	utils.InvalidateCacheAsync(sc.RedisClient, "stores")
	utils.InvalidateCacheAsync(sc.RedisClient, "dashboard_stats")
	if err := sc.BleveRepo.UpdateStore(*store); err != nil {
		config.Logger.Warn("Failed to update store search index",
			zap.String("store_id", store.ID.String()),
			zap.Error(err),
		)
	}
}

// storeListItem decorates a store with the list-view "done" affordance.
type storeListItem struct {
	models.Store
	IsDone bool `json:"is_done"`
}

func toListItems(stores []models.Store) []storeListItem {
	items := make([]storeListItem, 0, len(stores))
	for _, store := range stores {
		items = append(items, storeListItem{Store: store, IsDone: store.CurrentStatus.IsDone()})
	}
	return items
}
