package main

import (
	"context"
	"log"

	"go-afetyardim/config"
	"go-afetyardim/cronjobs"
	"go-afetyardim/db"
	"go-afetyardim/geocode"
	"go-afetyardim/ingestion"
	"go-afetyardim/logger"
	"go-afetyardim/routes"
	"go-afetyardim/sheets"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	// Init firestore
	firestoreClient, err := db.InitFirestore(ctx, cfg.FirebaseCredentials)
	if err != nil {
		zl.Fatal("Failed to initialize Firestore", zap.Error(err))
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	sheetsService, err := sheets.InitSheetsService(ctx, cfg.GoogleAPIKey)
	if err != nil {
		zl.Fatal("Failed to initialize Sheets service", zap.Error(err))
	}

	// Maps is only the fallback for links without coordinates.
	var mapsClient *maps.Client
	if cfg.MapsCredentials != "" {
		mapsClient, err = geocode.InitMapsClient(cfg.MapsCredentials)
		if err != nil {
			zl.Fatal("Failed to initialize Maps client", zap.Error(err))
		}
	} else {
		zl.Warn("MAPS_CREDENTIALS not set, place-name geocoding disabled")
	}

	repo := db.NewSiteRepository(firestoreClient, zl.Named("db"))
	ingester := ingestion.NewIngester(repo, geocode.NewMapLinkGeocoder(mapsClient, zl.Named("geocode")), zl.Named("ingestion"))
	runner := cronjobs.NewRunner(sheets.NewClient(sheetsService), ingester, cfg.Sheets, zl.Named("runner"))

	// Initialize cron jobs
	scheduler, err := cronjobs.InitCronJobs(runner, zl.Named("cron"))
	if err != nil {
		zl.Fatal("Failed to schedule sheet ingestion", zap.Error(err))
	}
	defer scheduler.Stop()

	zl.Info("Scheduled sheets", zap.Strings("cities", runner.Cities()))

	r := routes.SetupRouter(repo, runner, zl.Named("http"))
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal("Failed to start server", zap.Error(err))
	}
}
