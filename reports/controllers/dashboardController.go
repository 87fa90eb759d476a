package controllers

import (
	"context"
	"encoding/json"
	"time"

	"signops-backend/config"
	"signops-backend/db/models"
	elements_repositories "signops-backend/elements/repositories"
	enquiries_repositories "signops-backend/enquiries/repositories"
	"signops-backend/reports/repositories"
	stores_repositories "signops-backend/stores/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReportsController struct {
	StoreRepo   stores_repositories.StoreRepository
	ReportsRepo repositories.ReportsRepository
	EnquiryRepo enquiries_repositories.EnquiryRepository
	ElementRepo elements_repositories.ElementRepository
	DB          *gorm.DB
	Ctx         context.Context
	RedisClient *redis.Client
}

const dashboardStatsKey = "dashboard_stats:summary"
const dashboardStatsTTL = 30 * time.Second

type dashboardStats struct {
	StatusCounts map[models.StoreStatus]int64   `json:"status_counts"`
	TotalStores  int64                          `json:"total_stores"`
	Completed    int64                          `json:"completed"`
	Enquiries    map[models.EnquiryStatus]int64 `json:"enquiries"`
}

// GetDashboardStats returns the pipeline counts for the landing page.
// The payload is cached briefly; workflow mutations also invalidate it.
func (rc *ReportsController) GetDashboardStats(c *fiber.Ctx) error {
	if cached, err := rc.RedisClient.Get(context.Background(), dashboardStatsKey).Result(); err == nil {
		var stats dashboardStats
		if json.Unmarshal([]byte(cached), &stats) == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": stats, "cached": true})
		}
	}

	counts, err := rc.StoreRepo.GetStatusCounts()
	if err != nil {
		config.Logger.Error("Failed to fetch status counts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard stats", "error": err.Error()})
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	enquiryCounts, err := rc.EnquiryRepo.CountByStatus()
	if err != nil {
		config.Logger.Warn("Failed to fetch enquiry counts", zap.Error(err))
	}

	stats := dashboardStats{
		StatusCounts: counts,
		TotalStores:  total,
		Completed:    counts[models.StatusCompleted],
		Enquiries:    enquiryCounts,
	}

	if payload, err := json.Marshal(stats); err == nil {
		rc.RedisClient.Set(context.Background(), dashboardStatsKey, payload, dashboardStatsTTL)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": stats})
}

// GetDashboardAnalytics returns the zone, client and monthly series for
// the analytics charts.
func (rc *ReportsController) GetDashboardAnalytics(c *fiber.Ctx) error {
	months := c.QueryInt("months", 6)
	if months <= 0 || months > 24 {
		months = 6
	}

	zones, err := rc.ReportsRepo.GetZoneBreakdown()
	if err != nil {
		config.Logger.Error("Failed to fetch zone breakdown", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch analytics", "error": err.Error()})
	}

	clients, err := rc.ReportsRepo.GetClientBreakdown()
	if err != nil {
		config.Logger.Error("Failed to fetch client breakdown", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch analytics", "error": err.Error()})
	}

	monthly, err := rc.ReportsRepo.GetMonthlyCompletions(months)
	if err != nil {
		config.Logger.Error("Failed to fetch monthly completions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch analytics", "error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"by_zone":             zones,
			"by_client":           clients,
			"monthly_completions": monthly,
		},
	})
}
