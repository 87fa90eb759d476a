package routes

import (
	"time"

	indexing_repository "signops-backend/bleve/repositories"
	"signops-backend/db/models"
	"signops-backend/enquiries/controllers"
	"signops-backend/enquiries/repositories"
	"signops-backend/middleware"
	"signops-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

func EnquiryRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	enquiryRepository repositories.EnquiryRepository,
	bleveRepo indexing_repository.BleveRepositoryInterface,
	hub *websocket.Hub,
) {
	enquiryController := &controllers.EnquiryController{
		EnquiryRepo: enquiryRepository,
		DB:          appCtx.DB,
		Ctx:         appCtx.Ctx,
		BleveRepo:   bleveRepo,
		Hub:         hub,
		RedisClient: appCtx.RedisClient,
	}

	// Public contact form, throttled per IP
	app.Post("/api/v1/enquiries", middleware.PublicRateLimit(rate.Every(time.Minute/5), 5), enquiryController.CreateEnquiry)

	viewEnquiries := middleware.RequireModuleView(appCtx, models.ModuleEnquiries)

	enquiryRoutes := app.Group("/api/v1/enquiries", middleware.ProtectedRoute(appCtx))
	enquiryRoutes.Get("/", viewEnquiries, enquiryController.GetFilteredEnquiries)
	enquiryRoutes.Get("/:id", viewEnquiries, enquiryController.RetrieveSingleEnquiry)
	enquiryRoutes.Patch("/:id", viewEnquiries, enquiryController.UpdateEnquiry)
}
