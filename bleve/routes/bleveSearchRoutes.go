package routes

import (
	"signops-backend/bleve/controllers"
	"signops-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func InitBleveRoutes(app *fiber.App, controller *controllers.SearchController, appContext *middleware.AppContext) {
	api := app.Group("/api/v1/search")
	api.Use(middleware.ProtectedRoute(appContext))
	{
		api.Get("/stores", controller.SearchStoresController)
		api.Get("/users", controller.SearchUsersController)
		api.Get("/clients", controller.SearchClientsController)
		api.Get("/enquiries", controller.SearchEnquiriesController)
	}
}
