package main

import (
	"context"
	"log"

	"signops-backend/config"
	"signops-backend/db"
	"signops-backend/middleware"
	"signops-backend/tasks"
	"signops-backend/token"
	"signops-backend/utils"

	// Repositories
	clients_repositories "signops-backend/clients/repositories"
	elements_repositories "signops-backend/elements/repositories"
	enquiries_repositories "signops-backend/enquiries/repositories"
	reports_repositories "signops-backend/reports/repositories"
	stores_repositories "signops-backend/stores/repositories"
	users_repositories "signops-backend/users/repositories"

	users_services "signops-backend/users/services"

	// Routes
	client_routes "signops-backend/clients/routes"
	element_routes "signops-backend/elements/routes"
	enquiry_routes "signops-backend/enquiries/routes"
	report_routes "signops-backend/reports/routes"
	store_routes "signops-backend/stores/routes"
	user_routes "signops-backend/users/routes"

	// bleve
	bleveControllers "signops-backend/bleve/controllers"
	bleveRepositories "signops-backend/bleve/repositories"
	bleveRoutes "signops-backend/bleve/routes"
	bleveServices "signops-backend/bleve/services"

	// WebSocket
	"signops-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // bulk uploads carry spreadsheets and photos
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	gdb := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisAddr := config.GetEnv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default for development
		config.Logger.Warn("REDIS_ADDRESS not set, using default: localhost:6379")
	}

	redisClient := config.InitRedisServer(ctx)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	tokenKey := config.GetEnv("TOKEN_SYMMETRIC_KEY")
	tokenMaker, err := token.NewPasetoMaker(tokenKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	indexPath := config.GetEnv("BLEVE_INDEX_PATH")
	if indexPath == "" {
		indexPath = "./bleve_data" // Default for local development
		config.Logger.Warn("BLEVE_INDEX_PATH not set, using default: ./bleve_data")
	}

	// Initialize the mailer
	utils.InitializeMailer()
	if utils.GetMailer() == nil {
		config.Logger.Fatal("Mailer not initialized")
		log.Fatalf("Mailer not initialized")
	}

	// ------ WebSocket hub for workflow and enquiry events ------
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Serve static files
	app.Static("/public", "./public")
	app.Static("/uploads", "./uploads")

	// Shared middleware context
	appCtx := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
		DB:          gdb,
	}

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)
	storeRepo := stores_repositories.NewStoreRepository(gdb)
	userRepo := users_repositories.NewUserRepository(gdb)
	clientRepo := clients_repositories.NewClientRepository(gdb)
	elementRepo := elements_repositories.NewElementRepository(gdb)
	enquiryRepo := enquiries_repositories.NewEnquiryRepository(gdb)
	reportsRepo := reports_repositories.NewReportsRepository(gdb)

	// Services
	fileStorage := utils.NewLocalFileStorage("./uploads")
	otpService := users_services.NewOtpService(redisClient, userRepo, ctx)

	// Routes
	user_routes.UserRouterInit(app, appCtx, userRepo, storeRepo, bleveInterfaceRepo, otpService)
	store_routes.StoreRouterInit(app, appCtx, storeRepo, userRepo, bleveInterfaceRepo, wsHub, asynqClient, fileStorage)
	client_routes.ClientRouterInit(app, appCtx, clientRepo, bleveInterfaceRepo)
	element_routes.ElementRouterInit(app, appCtx, elementRepo)
	enquiry_routes.EnquiryRouterInit(app, appCtx, enquiryRepo, bleveInterfaceRepo, wsHub)
	report_routes.ReportRouterInit(app, appCtx, storeRepo, reportsRepo, enquiryRepo, elementRepo)

	// WebSocket route with cookie token validation
	wsHandler := websocket.NewWsHandler(wsHub, tokenMaker)
	app.Get("/ws", wsHandler.HandleWebSocket)

	// Bleve Routes
	bleveController := bleveControllers.NewSearchController(bleveServiceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController, appCtx)

	// Asynq worker for bulk document jobs, sharing the process
	taskProcessor := tasks.NewTaskProcessor(storeRepo, redisClient)
	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{Concurrency: 2})
	go func() {
		if err := asynqServer.Run(taskProcessor.Mux()); err != nil {
			config.Logger.Fatal("Asynq server failed", zap.Error(err))
		}
	}()

	// Date location
	if err := utils.InitializeDateLocation(); err != nil {
		config.Logger.Fatal("Failed to initialize date location", zap.Error(err))
	}

	// Background cleanup tasks
	go utils.RunScheduledCleanup(redisClient)

	// Warm the search indices from the database
	go func() {
		if stores, _, err := storeRepo.GetFilteredStores(10000, 0, nil); err == nil {
			if err := bleveInterfaceRepo.IndexExistingStores(stores); err != nil {
				config.Logger.Warn("Failed to index existing stores", zap.Error(err))
			}
		}
		if users, err := userRepo.GetAllUsers(); err == nil {
			if err := bleveInterfaceRepo.IndexExistingUsers(users); err != nil {
				config.Logger.Warn("Failed to index existing users", zap.Error(err))
			}
		}
	}()

	// Seed the system roles and the first admin account
	if err := db.SeedInitialRolesAndAdmin(gdb); err != nil {
		config.Logger.Error("Database seeding failed", zap.Error(err))
	}

	// Start the application
	config.Logger.Info("Server starting with WebSocket support", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
