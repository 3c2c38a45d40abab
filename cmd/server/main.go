package main

import (
	"github.com/ivancepe/Production-Trial/internal/config"
	"github.com/ivancepe/Production-Trial/internal/database"
	"github.com/ivancepe/Production-Trial/internal/logging"
	"github.com/ivancepe/Production-Trial/internal/server"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, nil)
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer database.Close(db)

	app := server.New(cfg, db, log)

	log.WithField("port", cfg.HTTPPort).Info("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
