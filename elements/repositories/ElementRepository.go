package repositories

import (
	"fmt"
	"strings"

	"signops-backend/db/models"

	"gorm.io/gorm"
)

type ElementRepository interface {
	CreateElement(element *models.Element) (*models.Element, error)
	GetElementByID(id string) (*models.Element, error)
	UpdateElement(element *models.Element) (*models.Element, error)
	DeactivateElement(id string, updatedBy string) error
	GetAllElements() ([]models.Element, error)
	GetActiveElements() ([]models.Element, error)
	GetElementsByIDs(ids []string) ([]models.Element, error)
	GetFilteredElements(pageSize int, offset int, filters map[string]string) ([]models.Element, int64, error)
}

type elementRepository struct {
	db *gorm.DB
}

func NewElementRepository(db *gorm.DB) ElementRepository {
	return &elementRepository{db: db}
}

func (r *elementRepository) CreateElement(element *models.Element) (*models.Element, error) {
	var existing models.Element
	err := r.db.Unscoped().Where("name = ?", element.Name).First(&existing).Error
	if err == nil {
		if !existing.DeletedAt.Valid {
			return nil, fmt.Errorf("an element named %s already exists", element.Name)
		}
		element.ID = existing.ID
		element.DeletedAt = gorm.DeletedAt{}
		element.IsActive = true
		if err := r.db.Unscoped().Save(element).Error; err != nil {
			return nil, err
		}
		return element, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := r.db.Create(element).Error; err != nil {
		return nil, err
	}
	return element, nil
}

func (r *elementRepository) GetElementByID(id string) (*models.Element, error) {
	var element models.Element
	if err := r.db.Where("id = ?", id).First(&element).Error; err != nil {
		return nil, err
	}
	return &element, nil
}

func (r *elementRepository) UpdateElement(element *models.Element) (*models.Element, error) {
	if err := r.db.Save(element).Error; err != nil {
		return nil, err
	}
	return element, nil
}

// DeactivateElement hides the element from new quotations. Past RFQs
// already carry their rates so nothing breaks retroactively.
func (r *elementRepository) DeactivateElement(id string, updatedBy string) error {
	return r.db.Model(&models.Element{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}

func (r *elementRepository) GetAllElements() ([]models.Element, error) {
	var elements []models.Element
	err := r.db.Order("name ASC").Find(&elements).Error
	return elements, err
}

func (r *elementRepository) GetActiveElements() ([]models.Element, error) {
	var elements []models.Element
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&elements).Error
	return elements, err
}

func (r *elementRepository) GetElementsByIDs(ids []string) ([]models.Element, error) {
	var elements []models.Element
	err := r.db.Where("id IN ?", ids).Find(&elements).Error
	return elements, err
}

func (r *elementRepository) GetFilteredElements(pageSize int, offset int, filters map[string]string) ([]models.Element, int64, error) {
	db := r.db.Model(&models.Element{})

	if active, ok := filters["is_active"]; ok {
		db = db.Where("is_active = ?", active == "true")
	}
	if search, ok := filters["search"]; ok {
		db = db.Where("name ILIKE ?", "%"+strings.TrimSpace(search)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var elements []models.Element
	err := db.Order("name ASC").Limit(pageSize).Offset(offset).Find(&elements).Error
	return elements, total, err
}
