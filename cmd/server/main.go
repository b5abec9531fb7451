package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/starwars-api/internal/config"
	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/logging"
	"github.com/localnerve/starwars-api/internal/server"
	"github.com/sirupsen/logrus"
)

// @title Star Wars API
// @version 1.0.0
// @description Users, Star Wars catalog records and their favorite lists

// @contact.name API Support
// @contact.url https://github.com/localnerve/starwars-api
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	srv := server.New(cfg, db, log)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-quit
		log.WithField("signal", sig.String()).Info("Gracefully shutting down...")
		if err := srv.App.ShutdownWithTimeout(server.ShutdownTimeout); err != nil {
			log.WithError(err).Error("Shutdown did not complete cleanly")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"default_db": cfg.DatabaseURL == config.DefaultDatabaseURL,
	}).Info("Starting server")
	if err := srv.App.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}

	log.Info("Server stopped")
}
