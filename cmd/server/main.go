package main

import (
	"flag"
	"log"
	"net/http"

	api "sheerent-backend/internal/api/http"
	"sheerent-backend/internal/config"
	"sheerent-backend/internal/db"
	"sheerent-backend/internal/detect"
	"sheerent-backend/internal/device"
	"sheerent-backend/internal/jobs"
	"sheerent-backend/internal/logger"
	"sheerent-backend/internal/pricing"
	"sheerent-backend/internal/repository/postgres"
	"sheerent-backend/internal/scheduler"
	"sheerent-backend/internal/service"
	"sheerent-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Sheerent backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	conn, err := db.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	logger.Info("Database ready")

	store := postgres.NewStore(conn)

	images, err := storage.NewLocalStore(cfg.Storage.RootDir, cfg.Storage.ThumbnailMaxPx)
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	detector := detect.NewClient(cfg.Detection.BaseURL, cfg.Detection.ClassNames, cfg.Detection.Confidence, cfg.DetectionTimeout())
	lockerDevice := device.NewClient(cfg.Device.BaseURL, cfg.DeviceTimeout())
	pricer := pricing.NewEngine(cfg.Pricing.InsuranceRate, cfg.Pricing.ServiceRate)

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.Enabled)
	userSvc := service.NewUserService(store.UserRepository, store.ItemRepository, store.RentalRepository)
	itemSvc := service.NewItemService(store.ItemRepository, store.UserRepository, images, cfg.Lockers.IDs)
	lockerSvc := service.NewLockerService(store.ItemRepository, cfg.Lockers.IDs)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.ItemRepository,
		store.UserRepository,
		pricer,
		detector,
		images,
		emailSvc,
	)

	jobRunner := jobs.NewJobRunner(store.RentalRepository, store.UserRepository, emailSvc)
	sched, err := scheduler.NewScheduler(jobRunner, cfg.Scheduler.OverdueReminders)
	if err != nil {
		logger.Error("Failed to initialize scheduler", "error", err)
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	router := api.NewRouter(userSvc, itemSvc, rentalSvc, lockerSvc, lockerDevice)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
