// @title CampusLearn API
// @version 1.0
// @description Backend service for the CampusLearn tutoring platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"campuslearn_backend/internal/app"
	"campuslearn_backend/internal/config"
	"campuslearn_backend/pkg/configwatcher"
	"campuslearn_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Schema migration runs inside NewApp.
	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration complete, exiting")
		return
	}

	// Hot-reload the config file. Each reload publishes a fresh snapshot;
	// middleware loads the live config per request, so secret rotation takes
	// effect without a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		application.Live.Store(newCfg)
	})

	application.Run()
}
