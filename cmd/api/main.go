package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"cypress_backend/internal/controller"
	"cypress_backend/internal/middleware"
	"cypress_backend/internal/model"
	"cypress_backend/pkg/config"
	"cypress_backend/pkg/cron"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/email"
	"cypress_backend/pkg/plan"
	"cypress_backend/pkg/seed"
	"cypress_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Get("/callback", controller.VerifyEmail)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// User search for the collaborator picker
	protected.Get("/users/search", controller.SearchUsers)

	// Workspace Routes
	workspaces := protected.Group("/workspaces")
	workspaces.Post("/", controller.CreateWorkspace)
	workspaces.Get("/my", controller.ListMyWorkspaces)
	workspaces.Get("/:workspace_id", middleware.CheckWorkspaceAccess(), controller.GetWorkspace)
	workspaces.Put("/:workspace_id", middleware.CheckWorkspaceAccess(), controller.UpdateWorkspace)
	workspaces.Put("/:workspace_id/title", middleware.CheckWorkspaceAccess(), controller.RenameWorkspace)
	workspaces.Put("/:workspace_id/trash", middleware.CheckWorkspaceOwnership(), controller.TrashWorkspace)
	workspaces.Put("/:workspace_id/restore", middleware.CheckWorkspaceOwnership(), controller.RestoreWorkspace)
	workspaces.Delete("/:workspace_id", middleware.CheckWorkspaceOwnership(), controller.DeleteWorkspace)
	workspaces.Post("/:workspace_id/logo", middleware.CheckWorkspaceOwnership(), controller.UploadWorkspaceLogo)
	workspaces.Post("/:workspace_id/banner", middleware.CheckWorkspaceAccess(), middleware.CheckFeatureAccess(plan.CustomBanners), controller.UploadWorkspaceBanner)

	// Collaborator Routes
	workspaces.Get("/:workspace_id/collaborators", middleware.CheckWorkspaceAccess(), controller.ListCollaborators)
	workspaces.Post("/:workspace_id/collaborators", middleware.CheckWorkspaceOwnership(), controller.AddCollaborators)
	workspaces.Delete("/:workspace_id/collaborators", middleware.CheckWorkspaceOwnership(), controller.RemoveCollaborators)

	// Folder Routes
	workspaces.Post("/:workspace_id/folders", middleware.CheckWorkspaceAccess(), middleware.CheckFolderLimit(), controller.CreateFolder)
	workspaces.Get("/:workspace_id/folders", middleware.CheckWorkspaceAccess(), controller.ListFolders)

	folders := protected.Group("/folders")
	folders.Put("/:folder_id", middleware.CheckFolderAccess(), controller.UpdateFolder)
	folders.Put("/:folder_id/trash", middleware.CheckFolderAccess(), controller.TrashFolder)
	folders.Put("/:folder_id/restore", middleware.CheckFolderAccess(), controller.RestoreFolder)
	folders.Delete("/:folder_id", middleware.CheckFolderAccess(), controller.DeleteFolder)

	// File Routes
	workspaces.Post("/:workspace_id/files", middleware.CheckWorkspaceAccess(), controller.CreateFile)
	workspaces.Get("/:workspace_id/files", middleware.CheckWorkspaceAccess(), controller.ListFiles)

	files := protected.Group("/files")
	files.Get("/:file_id", middleware.CheckFileAccess(), controller.GetFile)
	files.Put("/:file_id", middleware.CheckFileAccess(), controller.UpdateFile)
	files.Put("/:file_id/move", middleware.CheckFileAccess(), controller.MoveFile)
	files.Put("/:file_id/trash", middleware.CheckFileAccess(), controller.TrashFile)
	files.Put("/:file_id/restore", middleware.CheckFileAccess(), controller.RestoreFile)
	files.Delete("/:file_id", middleware.CheckFileAccess(), controller.DeleteFile)

	// Settings routes
	settings := api.Group("/settings", middleware.AuthMiddleware())
	settings.Get("/profile", controller.GetProfile)
	settings.Put("/profile", controller.UpdateProfile)
	settings.Post("/avatar", controller.UploadAvatar)

	// Billing routes
	billing := api.Group("/billing")
	billing.Get("/products", controller.ListProducts)

	billingProtected := billing.Use(middleware.AuthMiddleware())
	billingProtected.Post("/create-checkout-session", controller.CreateCheckoutSession)
	billingProtected.Post("/cancel-subscription", controller.CancelSubscription)
	billingProtected.Get("/my", controller.GetMySubscription)

	// Stripe webhook
	api.Post("/webhook", controller.HandleStripeWebhook)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		if err := email.InitEmailService(apiKey); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY is not set, emails are disabled")
	}

	storage.Init(cfg.Storage)
	controller.InitAuthController(cfg)
	controller.InitBillingController(cfg)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(dbURL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Customer{},
		&model.Workspace{},
		&model.Folder{},
		&model.File{},
		&model.Collaborator{},
		&model.Product{},
		&model.Price{},
		&model.Subscription{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	if os.Getenv("SEED_BILLING_CATALOG") == "true" {
		seed.SeedBillingCatalog(database.GetDB())
	}

	controller.InitWorkspaceController()
	cron.InitTrashPurgeCron()
	cron.InitTrialExpiryCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
