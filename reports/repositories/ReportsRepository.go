package repositories

import (
	"signops-backend/db/models"

	"gorm.io/gorm"
)

// ZoneBreakdown aggregates store progress for one zone.
type ZoneBreakdown struct {
	Zone      string `json:"zone"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	InRecce   int64  `json:"in_recce"`
	InInstall int64  `json:"in_installation"`
}

// ClientBreakdown aggregates store progress for one client.
type ClientBreakdown struct {
	ClientCode string `json:"client_code"`
	ClientName string `json:"client_name"`
	Total      int64  `json:"total"`
	Completed  int64  `json:"completed"`
}

// MonthlyCompletion counts stores completed per calendar month.
type MonthlyCompletion struct {
	Month     string `json:"month"`
	Completed int64  `json:"completed"`
}

type ReportsRepository interface {
	GetZoneBreakdown() ([]ZoneBreakdown, error)
	GetClientBreakdown() ([]ClientBreakdown, error)
	GetMonthlyCompletions(months int) ([]MonthlyCompletion, error)
}

type reportsRepository struct {
	db *gorm.DB
}

func NewReportsRepository(db *gorm.DB) ReportsRepository {
	return &reportsRepository{db: db}
}

var recceStatuses = []models.StoreStatus{
	models.StatusRecceAssigned,
	models.StatusRecceSubmitted,
	models.StatusRecceApproved,
	models.StatusRecceRejected,
}

var installationStatuses = []models.StoreStatus{
	models.StatusInstallationAssigned,
	models.StatusInstallationSubmitted,
	models.StatusInstallationRejected,
}

func (r *reportsRepository) GetZoneBreakdown() ([]ZoneBreakdown, error) {
	var rows []ZoneBreakdown
	err := r.db.Model(&models.Store{}).
		Select(`zone,
			count(*) as total,
			count(*) filter (where current_status = ?) as completed,
			count(*) filter (where current_status in ?) as in_recce,
			count(*) filter (where current_status in ?) as in_install`,
			models.StatusCompleted, recceStatuses, installationStatuses).
		Group("zone").
		Order("zone ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportsRepository) GetClientBreakdown() ([]ClientBreakdown, error) {
	var rows []ClientBreakdown
	err := r.db.Model(&models.Store{}).
		Select(`stores.client_code,
			coalesce(clients.client_name, '') as client_name,
			count(*) as total,
			count(*) filter (where stores.current_status = ?) as completed`,
			models.StatusCompleted).
		Joins("left join clients on clients.id = stores.client_id").
		Group("stores.client_code, clients.client_name").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

// GetMonthlyCompletions buckets completed stores by the month they were
// last updated, which for a completed store is the approval date.
func (r *reportsRepository) GetMonthlyCompletions(months int) ([]MonthlyCompletion, error) {
	var rows []MonthlyCompletion
	err := r.db.Model(&models.Store{}).
		Select("to_char(updated_at, 'YYYY-MM') as month, count(*) as completed").
		Where("current_status = ?", models.StatusCompleted).
		Where("updated_at >= now() - (? * interval '1 month')", months).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}
