package routes

import (
	"signops-backend/db/models"
	elements_repositories "signops-backend/elements/repositories"
	enquiries_repositories "signops-backend/enquiries/repositories"
	"signops-backend/middleware"
	"signops-backend/reports/controllers"
	"signops-backend/reports/repositories"
	stores_repositories "signops-backend/stores/repositories"

	"github.com/gofiber/fiber/v2"
)

func ReportRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	storeRepository stores_repositories.StoreRepository,
	reportsRepository repositories.ReportsRepository,
	enquiryRepository enquiries_repositories.EnquiryRepository,
	elementRepository elements_repositories.ElementRepository,
) {
	reportsController := &controllers.ReportsController{
		StoreRepo:   storeRepository,
		ReportsRepo: reportsRepository,
		EnquiryRepo: enquiryRepository,
		ElementRepo: elementRepository,
		DB:          appCtx.DB,
		Ctx:         appCtx.Ctx,
		RedisClient: appCtx.RedisClient,
	}

	viewDashboard := middleware.RequireModuleView(appCtx, models.ModuleDashboard)
	viewReports := middleware.RequireModuleView(appCtx, models.ModuleReports)

	dashboardRoutes := app.Group("/api/v1/dashboard", middleware.ProtectedRoute(appCtx))
	dashboardRoutes.Get("/stats", viewDashboard, reportsController.GetDashboardStats)

	analyticsRoutes := app.Group("/api/v1/analytics", middleware.ProtectedRoute(appCtx))
	analyticsRoutes.Get("/dashboard", viewReports, reportsController.GetDashboardAnalytics)

	reportRoutes := app.Group("/api/v1/reports", middleware.ProtectedRoute(appCtx))
	reportRoutes.Post("/rfq/generate", viewReports, reportsController.GenerateRFQ)
	reportRoutes.Get("/certificate/:id", viewReports, reportsController.GenerateCertificate)
}
