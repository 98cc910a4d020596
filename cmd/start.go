package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-audit/core/config"
	"asset-audit/core/database"
	"asset-audit/core/loader"
	"asset-audit/core/logger"
	"asset-audit/core/middleware/auth"
	"asset-audit/core/middleware/rayid"
	"asset-audit/core/storage"

	"asset-audit/feature/audit"
	auditmodels "asset-audit/feature/audit/models"
	"asset-audit/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-audit/docs/swagger"
)

// @title Asset Audit API
// @version 1.0
// @description API for asset tracking and scan-driven room audits.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset audit server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to inventory database", zap.String("name", cfg.Database.Name))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Build the features: the inventory is the system of record, the
		// audit engine drives it through the gateway.
		inventoryFeature := inventory.NewFeature(cfg.Inventory, db, logg)

		var archiver *audit.Archiver
		if cfg.Audit.ArchiveEnabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			archiver = audit.NewArchiver(store, cfg.Storage.Bucket, logg)
		}

		gateway := audit.NewCachedResolver(
			inventory.NewGateway(inventoryFeature.Service()),
			time.Duration(cfg.Audit.ResolverTTLSeconds)*time.Second)
		auditManager := audit.NewManager(cfg.Audit, gateway, archiver, logg)

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(inventoryFeature)
		mgr.Register(audit.NewFeature(cfg.Audit, auditManager, logg))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		// Leave no audit half-open: cancel anything still running so the
		// inventory is untouched by a session that never finished.
		if auditManager.State() != auditmodels.StateIdle {
			if _, err := auditManager.Cancel(); err == nil {
				logg.Info("Cancelled in-flight audit session")
			}
		}
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
