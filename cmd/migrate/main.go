package main

import (
	"log/slog"
	"os"

	"meridian-schools/app/config"
	"meridian-schools/app/database"
	"meridian-schools/app/logging"
)

// Standalone migration runner for deployments that apply schema changes
// before rolling the server.
func main() {
	logging.Setup()

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
