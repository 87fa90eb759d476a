package routes

import (
	"signops-backend/db/models"
	"signops-backend/elements/controllers"
	"signops-backend/elements/repositories"
	"signops-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func ElementRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	elementRepository repositories.ElementRepository,
) {
	elementController := &controllers.ElementController{
		ElementRepo: elementRepository,
		DB:          appCtx.DB,
		Ctx:         appCtx.Ctx,
		RedisClient: appCtx.RedisClient,
	}

	viewElements := middleware.RequireModuleView(appCtx, models.ModuleElements)

	elementRoutes := app.Group("/api/v1/elements", middleware.ProtectedRoute(appCtx))
	elementRoutes.Get("/", viewElements, elementController.GetFilteredElements)
	elementRoutes.Post("/", viewElements, elementController.CreateElement)

	// Catalog list stays open to any session for RFQ builders
	elementRoutes.Get("/all", elementController.GetActiveElements)

	elementRoutes.Get("/:id", viewElements, elementController.RetrieveSingleElement)
	elementRoutes.Patch("/:id", viewElements, elementController.UpdateElement)
	elementRoutes.Post("/:id/deactivate", viewElements, elementController.DeactivateElement)
}
