package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"asset-loader/core/config"
	"asset-loader/core/database"
	"asset-loader/core/loader"
	"asset-loader/core/logger"
	"asset-loader/core/middleware/auth"
	"asset-loader/core/middleware/rayid"
	"asset-loader/core/registry"
	"asset-loader/core/resource"
	"asset-loader/core/storage"

	"asset-loader/feature/batch"
	"asset-loader/feature/history"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset loader server",
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

		// 3. Connect to Database (Optional)
		// Without it the history feature stays disabled.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, history disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to history database")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage + Fetchers
		fetchers := map[resource.LoadType]resource.Fetcher{
			resource.LoadTypeXHR: resource.NewHTTPFetcher(nil),
		}
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable, storage resources will fail", zap.Error(err))
		} else {
			fetchers[resource.LoadTypeStorage] = resource.NewStorageFetcher(store, cfg.Storage.Bucket)
		}

		newLoader := func() *loader.Loader {
			return loader.New(loader.Config{
				BaseURL:     cfg.Loader.BaseURL,
				Concurrency: cfg.Loader.Concurrency,
				Fetchers:    fetchers,
			}, logg)
		}

		// 6. Initialize Feature Registry
		mgr := registry.NewManager(logg)

		historyFeature := history.NewFeature(db, logg)
		var recorder batch.Recorder
		if historyFeature.IsEnabled() {
			recorder = historyFeature.Store()
		}

		mgr.Register(batch.NewFeature(newLoader, cfg.Loader.Parallel, logg, recorder))
		mgr.Register(historyFeature)

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging Middleware (Zap + RayID)
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
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
