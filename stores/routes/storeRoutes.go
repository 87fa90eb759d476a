package routes

import (
	indexing_repository "signops-backend/bleve/repositories"
	"signops-backend/db/models"
	"signops-backend/middleware"
	"signops-backend/stores/controllers"
	"signops-backend/stores/repositories"
	users_repositories "signops-backend/users/repositories"
	"signops-backend/utils"
	"signops-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func StoreRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	storeRepository repositories.StoreRepository,
	userRepository users_repositories.UserRepository,
	bleveRepo indexing_repository.BleveRepositoryInterface,
	hub *websocket.Hub,
	asynqClient *asynq.Client,
	fileStorage *utils.LocalFileStorage,
) {
	storeController := &controllers.StoreController{
		StoreRepo:   storeRepository,
		UserRepo:    userRepository,
		DB:          appCtx.DB,
		Ctx:         appCtx.Ctx,
		BleveRepo:   bleveRepo,
		Hub:         hub,
		AsynqClient: asynqClient,
		RedisClient: appCtx.RedisClient,
		FileStorage: fileStorage,
	}

	storeRoutes := app.Group("/api/v1/stores", middleware.ProtectedRoute(appCtx))

	viewStores := middleware.RequireModuleView(appCtx, models.ModuleStores)
	viewRecce := middleware.RequireModuleView(appCtx, models.ModuleRecce)
	viewInstallation := middleware.RequireModuleView(appCtx, models.ModuleInstallation)
	viewReports := middleware.RequireModuleView(appCtx, models.ModuleReports)

	// Master list and CRUD
	storeRoutes.Get("/", viewStores, storeController.GetFilteredStoresController)
	storeRoutes.Post("/", viewStores, storeController.CreateStoreController)
	storeRoutes.Post("/bulk-upload", viewStores, storeController.BulkUploadStoresController)
	storeRoutes.Get("/template", viewStores, storeController.DownloadStoreTemplateController)

	// Stage list views
	storeRoutes.Get("/recce", viewRecce, storeController.GetRecceStoresController)
	storeRoutes.Get("/installation", viewInstallation, storeController.GetInstallationStoresController)

	// Exports and bulk documents
	storeRoutes.Get("/export/installation", viewReports, storeController.ExportInstallationController)
	storeRoutes.Post("/pdf/bulk", viewReports, storeController.BulkPDFController)
	storeRoutes.Post("/ppt/bulk", viewReports, storeController.BulkDeckController)
	storeRoutes.Get("/documents/jobs/:id", viewReports, storeController.DocumentJobStatusController)

	// Field photo uploads
	storeRoutes.Post("/photos", storeController.UploadPhotoController)

	// Workflow
	storeRoutes.Post("/:id/assign-recce", viewStores, storeController.AssignRecceController)
	storeRoutes.Post("/:id/submit-recce", viewRecce, storeController.SubmitRecceController)
	storeRoutes.Post("/:id/review-recce", viewStores, storeController.ReviewRecceController)
	storeRoutes.Post("/:id/assign-installation", viewStores, storeController.AssignInstallationController)
	storeRoutes.Post("/:id/submit-installation", viewInstallation, storeController.SubmitInstallationController)
	storeRoutes.Post("/:id/review-installation", viewStores, storeController.ReviewInstallationController)

	// Single store last so the stage routes are not shadowed
	storeRoutes.Get("/:id", storeController.RetrieveSingleStoreController)
	storeRoutes.Patch("/:id", viewStores, storeController.UpdateStoreController)
}
