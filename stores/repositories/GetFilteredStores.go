package repositories

import (
	"signops-backend/db/models"

	"gorm.io/gorm"
)

// storesQueryBuilder builds queries for store filtering
type storesQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newStoresQueryBuilder(db *gorm.DB, filters map[string]string) *storesQueryBuilder {
	return &storesQueryBuilder{
		query:   db.Model(&models.Store{}),
		filters: filters,
	}
}

func (sqb *storesQueryBuilder) applyBasicStoreFilters() *storesQueryBuilder {
	if status, ok := sqb.filters["status"]; ok {
		sqb.query = sqb.query.Where("current_status = ?", status)
	}
	if zone, ok := sqb.filters["zone"]; ok {
		sqb.query = sqb.query.Where("zone = ?", zone)
	}
	if state, ok := sqb.filters["state"]; ok {
		sqb.query = sqb.query.Where("state = ?", state)
	}
	if city, ok := sqb.filters["city"]; ok {
		sqb.query = sqb.query.Where("city = ?", city)
	}
	if clientCode, ok := sqb.filters["client_code"]; ok {
		sqb.query = sqb.query.Where("client_code = ?", clientCode)
	}
	if poNumber, ok := sqb.filters["po_number"]; ok {
		sqb.query = sqb.query.Where("po_number = ?", poNumber)
	}
	if search, ok := sqb.filters["search"]; ok {
		like := "%" + search + "%"
		sqb.query = sqb.query.Where(
			"store_name ILIKE ? OR store_code ILIKE ? OR dealer_code ILIKE ?",
			like, like, like,
		)
	}
	return sqb
}

func (sqb *storesQueryBuilder) applyDateRangeFilter() *storesQueryBuilder {
	startDate := sqb.filters["start_date"]
	endDate := sqb.filters["end_date"]

	if startDate != "" && startDate != "null" && endDate != "" && endDate != "null" {
		sqb.query = sqb.query.Where("DATE(created_at) BETWEEN DATE(?) AND DATE(?)", startDate, endDate)
	}
	return sqb
}

func (sqb *storesQueryBuilder) applyLatestOrder() *storesQueryBuilder {
	sqb.query = sqb.query.Order("GREATEST(created_at, updated_at) DESC").Order("created_at DESC")
	return sqb
}

// GetFilteredStores returns filtered stores with pagination
func (r *storeRepository) GetFilteredStores(pageSize int, offset int, filters map[string]string) ([]models.Store, int64, error) {
	listQuery := newStoresQueryBuilder(r.db, filters).applyBasicStoreFilters().applyDateRangeFilter().applyLatestOrder()
	countQuery := newStoresQueryBuilder(r.db, filters).applyBasicStoreFilters().applyDateRangeFilter()

	var stores []models.Store
	if err := listQuery.query.Limit(pageSize).Offset(offset).Preload("Client").Find(&stores).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := countQuery.query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}
