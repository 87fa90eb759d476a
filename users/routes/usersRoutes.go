package routes

import (
	indexing_repository "signops-backend/bleve/repositories"
	"signops-backend/db/models"
	"signops-backend/middleware"
	stores_repositories "signops-backend/stores/repositories"
	"signops-backend/users/controllers"
	"signops-backend/users/repositories"
	"signops-backend/users/services"

	"github.com/gofiber/fiber/v2"
)

func UserRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	userRepository repositories.UserRepository,
	storeRepository stores_repositories.StoreRepository,
	bleveRepo indexing_repository.BleveRepositoryInterface,
	otpService services.OtpService,
) {
	userController := &controllers.UserController{
		UserRepo:    userRepository,
		StoreRepo:   storeRepository,
		DB:          appCtx.DB,
		Ctx:         appCtx.Ctx,
		BleveRepo:   bleveRepo,
		RedisClient: appCtx.RedisClient,
	}
	authController := &controllers.AuthController{
		UserRepo:   userRepository,
		AppCtx:     appCtx,
		OtpService: otpService,
	}

	// Login is the only public auth endpoint, everything else needs a session.
	authRoutes := app.Group("/api/v1/auth")
	authRoutes.Post("/login", authController.LoginUser)
	authRoutes.Post("/logout", middleware.ProtectedRoute(appCtx), authController.LogoutUser)
	authRoutes.Get("/me", middleware.ProtectedRoute(appCtx), authController.GetCurrentUser)
	authRoutes.Get("/navigation", middleware.ProtectedRoute(appCtx), authController.GetNavigation)
	authRoutes.Post("/totp/setup", middleware.ProtectedRoute(appCtx), authController.SetupTOTP)
	authRoutes.Post("/totp/confirm", middleware.ProtectedRoute(appCtx), authController.ConfirmTOTP)

	viewUsers := middleware.RequireModuleView(appCtx, models.ModuleUsers)

	userRoutes := app.Group("/api/v1/users", middleware.ProtectedRoute(appCtx))
	userRoutes.Get("/", viewUsers, userController.GetFilteredUsers)
	userRoutes.Post("/", viewUsers, userController.CreateUser)
	userRoutes.Post("/bulk-upload", viewUsers, userController.BulkUploadUsers)
	userRoutes.Get("/template", viewUsers, userController.DownloadUserTemplate)
	userRoutes.Get("/export", viewUsers, userController.ExportUsers)

	// Assignment pickers stay open to anyone with a session so assign
	// dialogs work for coordinators without the users module.
	userRoutes.Get("/assignable", userController.GetAssignableUsers)

	userRoutes.Get("/:id", viewUsers, userController.RetrieveSingleUser)
	userRoutes.Patch("/:id", viewUsers, userController.UpdateUser)
	userRoutes.Post("/:id/deactivate", viewUsers, userController.DeactivateUser)

	viewRoles := middleware.RequireModuleView(appCtx, models.ModuleRoles)

	roleRoutes := app.Group("/api/v1/roles", middleware.ProtectedRoute(appCtx))
	roleRoutes.Get("/", viewRoles, userController.GetAllRoles)
	roleRoutes.Post("/", viewRoles, userController.CreateRoleWithPermissions)
	roleRoutes.Get("/export", viewRoles, userController.ExportRoles)
	roleRoutes.Get("/:id", viewRoles, userController.GetRole)
	roleRoutes.Patch("/:id", viewRoles, userController.UpdateRoleWithPermissions)
}
