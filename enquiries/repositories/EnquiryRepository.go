package repositories

import (
	"strings"

	"signops-backend/db/models"

	"gorm.io/gorm"
)

type EnquiryRepository interface {
	CreateEnquiry(enquiry *models.Enquiry) (*models.Enquiry, error)
	GetEnquiryByID(id string) (*models.Enquiry, error)
	UpdateEnquiry(enquiry *models.Enquiry) (*models.Enquiry, error)
	GetFilteredEnquiries(pageSize int, offset int, filters map[string]string) ([]models.Enquiry, int64, error)
	CountByStatus() (map[models.EnquiryStatus]int64, error)
}

type enquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &enquiryRepository{db: db}
}

func (r *enquiryRepository) CreateEnquiry(enquiry *models.Enquiry) (*models.Enquiry, error) {
	if err := r.db.Create(enquiry).Error; err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (r *enquiryRepository) GetEnquiryByID(id string) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := r.db.Where("id = ?", id).First(&enquiry).Error; err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *enquiryRepository) UpdateEnquiry(enquiry *models.Enquiry) (*models.Enquiry, error) {
	if err := r.db.Save(enquiry).Error; err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (r *enquiryRepository) GetFilteredEnquiries(pageSize int, offset int, filters map[string]string) ([]models.Enquiry, int64, error) {
	db := r.db.Model(&models.Enquiry{})

	if status, ok := filters["status"]; ok {
		db = db.Where("status = ?", strings.ToUpper(status))
	}
	if search, ok := filters["search"]; ok {
		pattern := "%" + strings.TrimSpace(search) + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ? OR message ILIKE ?", pattern, pattern, pattern)
	}
	if startDate, ok := filters["start_date"]; ok {
		db = db.Where("created_at >= ?", startDate)
	}
	if endDate, ok := filters["end_date"]; ok {
		db = db.Where("created_at <= ?", endDate+" 23:59:59")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enquiries []models.Enquiry
	err := db.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&enquiries).Error
	return enquiries, total, err
}

func (r *enquiryRepository) CountByStatus() (map[models.EnquiryStatus]int64, error) {
	type statusCount struct {
		Status models.EnquiryStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.Model(&models.Enquiry{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.EnquiryStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
