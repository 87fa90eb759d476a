package repositories

import (
	"fmt"
	"strings"

	"signops-backend/db/models"

	"gorm.io/gorm"
)

type ClientRepository interface {
	CreateClient(client *models.Client) (*models.Client, error)
	GetClientByID(id string) (*models.Client, error)
	GetClientByCode(code string) (*models.Client, error)
	UpdateClient(client *models.Client) (*models.Client, error)
	DeactivateClient(id string, updatedBy string) error
	GetAllClients() ([]models.Client, error)
	GetFilteredClients(pageSize int, offset int, filters map[string]string) ([]models.Client, int64, error)
	CountStoresForClient(clientID string) (int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) CreateClient(client *models.Client) (*models.Client, error) {
	var existing models.Client
	err := r.db.Unscoped().Where("client_code = ?", client.ClientCode).First(&existing).Error
	if err == nil {
		if !existing.DeletedAt.Valid {
			return nil, fmt.Errorf("a client with code %s already exists", client.ClientCode)
		}
		// Restore the soft-deleted record so historical stores keep their FK
		client.ID = existing.ID
		client.DeletedAt = gorm.DeletedAt{}
		client.IsActive = true
		if err := r.db.Unscoped().Save(client).Error; err != nil {
			return nil, err
		}
		return client, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := r.db.Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) GetClientByID(id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetClientByCode(code string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("client_code = ?", code).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) UpdateClient(client *models.Client) (*models.Client, error) {
	if err := r.db.Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// DeactivateClient flags the client inactive. Records are never hard
// deleted so existing stores keep resolving their client.
func (r *clientRepository) DeactivateClient(id string, updatedBy string) error {
	return r.db.Model(&models.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}

func (r *clientRepository) GetAllClients() ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Order("client_name ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepository) GetFilteredClients(pageSize int, offset int, filters map[string]string) ([]models.Client, int64, error) {
	db := r.db.Model(&models.Client{})

	if active, ok := filters["is_active"]; ok {
		db = db.Where("is_active = ?", active == "true")
	}
	if search, ok := filters["search"]; ok {
		pattern := "%" + strings.TrimSpace(search) + "%"
		db = db.Where("client_name ILIKE ? OR client_code ILIKE ? OR branch_name ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	err := db.Order("client_name ASC").Limit(pageSize).Offset(offset).Find(&clients).Error
	return clients, total, err
}

func (r *clientRepository) CountStoresForClient(clientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Store{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}
