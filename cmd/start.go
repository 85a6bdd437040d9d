package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"price-manager/core/config"
	"price-manager/core/database"
	"price-manager/core/loader"
	"price-manager/core/logger"
	"price-manager/core/middleware/auth"
	"price-manager/core/middleware/rayid"
	"price-manager/core/storage"

	"price-manager/feature/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the price manager server",
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

		// 3. Connect to the catalog database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to catalog database", zap.String("name", cfg.Database.Name))

		// 4. Connect to snapshot storage (optional)
		var store storage.Client
		if cfg.Storage.Archive {
			if client, err := storage.NewClient(cfg.Storage); err != nil {
				logg.Warn("Snapshot storage unavailable, archiving disabled", zap.Error(err))
			} else {
				store = client
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(pricing.NewFeature(db, store, cfg.Storage.Bucket, logg, cfg.Feed, cfg.Reconcile))

		// Middleware Registration
		// RayID must come first so everything downstream can be traced.
		app.Use(rayid.New())

		// Request logging with Zap + RayID
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

		// Protect the API
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
