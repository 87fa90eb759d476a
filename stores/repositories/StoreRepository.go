package repositories

import (
	"errors"
	"fmt"

	"signops-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	CreateStore(store *models.Store) (*models.Store, error)
	BulkCreateStores(stores []models.Store) error
	GetStoreByID(id string) (*models.Store, error)
	UpdateStore(store *models.Store) (*models.Store, error)
	GetFilteredStores(pageSize int, offset int, filters map[string]string) ([]models.Store, int64, error)
	GetStoresByStatuses(statuses []models.StoreStatus, assigneeID *uuid.UUID, slot AssignmentSlot) ([]models.Store, error)
	GetStoresByIDs(ids []uuid.UUID) ([]models.Store, error)
	GetStatusCounts() (map[models.StoreStatus]int64, error)
	CountAssignedToUser(userID uuid.UUID) (recce int64, installation int64, err error)
}

// AssignmentSlot selects which workflow slot an assignee filter applies to.
type AssignmentSlot string

const (
	SlotRecce        AssignmentSlot = "recce"
	SlotInstallation AssignmentSlot = "installation"
)

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) CreateStore(store *models.Store) (*models.Store, error) {
	var existing models.Store
	err := r.db.Where("store_code = ? AND client_code = ?", store.StoreCode, store.ClientCode).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("a store with code %s already exists for this client", store.StoreCode)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing store: %w", err)
	}

	if err := r.db.Create(store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store in database: %w", err)
	}
	return store, nil
}

func (r *storeRepository) BulkCreateStores(stores []models.Store) error {
	if len(stores) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(stores, 100).Error; err != nil {
			return fmt.Errorf("failed to bulk insert stores: %w", err)
		}
		return nil
	})
}

func (r *storeRepository) GetStoreByID(id string) (*models.Store, error) {
	var store models.Store
	err := r.db.Preload("Client").Where("id = ?", id).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) UpdateStore(store *models.Store) (*models.Store, error) {
	if err := r.db.Save(store).Error; err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return store, nil
}

// GetStoresByStatuses returns stores in any of the given statuses, optionally
// narrowed to the field user assigned in the given workflow slot. The slot
// filter matches against the JSON workflow block.
func (r *storeRepository) GetStoresByStatuses(statuses []models.StoreStatus, assigneeID *uuid.UUID, slot AssignmentSlot) ([]models.Store, error) {
	var stores []models.Store

	db := r.db.Preload("Client").Where("current_status IN ?", statuses)
	if assigneeID != nil {
		switch slot {
		case SlotInstallation:
			db = db.Where("workflow -> 'installation_assigned_to' ->> 'id' = ?", assigneeID.String())
		default:
			db = db.Where("workflow -> 'recce_assigned_to' ->> 'id' = ?", assigneeID.String())
		}
	}

	err := db.Order("updated_at DESC").Find(&stores).Error
	return stores, err
}

func (r *storeRepository) GetStoresByIDs(ids []uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Preload("Client").Where("id IN ?", ids).Find(&stores).Error
	return stores, err
}

func (r *storeRepository) GetStatusCounts() (map[models.StoreStatus]int64, error) {
	type row struct {
		CurrentStatus models.StoreStatus
		Count         int64
	}
	var rows []row
	err := r.db.Model(&models.Store{}).
		Select("current_status, count(*) as count").
		Group("current_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.StoreStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.CurrentStatus] = rw.Count
	}
	return counts, nil
}

func (r *storeRepository) CountAssignedToUser(userID uuid.UUID) (int64, int64, error) {
	var recce, installation int64

	err := r.db.Model(&models.Store{}).
		Where("workflow -> 'recce_assigned_to' ->> 'id' = ?", userID.String()).
		Count(&recce).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.Model(&models.Store{}).
		Where("workflow -> 'installation_assigned_to' ->> 'id' = ?", userID.String()).
		Count(&installation).Error
	if err != nil {
		return 0, 0, err
	}

	return recce, installation, nil
}
