package routes

import (
	indexing_repository "signops-backend/bleve/repositories"
	"signops-backend/clients/controllers"
	"signops-backend/clients/repositories"
	"signops-backend/db/models"
	"signops-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func ClientRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	clientRepository repositories.ClientRepository,
	bleveRepo indexing_repository.BleveRepositoryInterface,
) {
	clientController := &controllers.ClientController{
		ClientRepo:  clientRepository,
		DB:          appCtx.DB,
		Ctx:         appCtx.Ctx,
		BleveRepo:   bleveRepo,
		RedisClient: appCtx.RedisClient,
	}

	viewClients := middleware.RequireModuleView(appCtx, models.ModuleClients)

	clientRoutes := app.Group("/api/v1/clients", middleware.ProtectedRoute(appCtx))
	clientRoutes.Get("/", viewClients, clientController.GetFilteredClients)
	clientRoutes.Post("/", viewClients, clientController.CreateClient)

	// Dropdown list stays open to any session for store creation forms
	clientRoutes.Get("/all", clientController.GetAllClients)

	clientRoutes.Get("/export", viewClients, clientController.ExportClients)
	clientRoutes.Get("/:id", viewClients, clientController.RetrieveSingleClient)
	clientRoutes.Patch("/:id", viewClients, clientController.UpdateClient)
	clientRoutes.Post("/:id/deactivate", viewClients, clientController.DeactivateClient)
}
