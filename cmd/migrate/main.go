package main

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/config"
	"github.com/andressep95/leadcapture/internal/migration"
	"github.com/andressep95/leadcapture/pkg/logger"
)

// migrate applies pending schema migrations and exits
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migration.Run(ctx, db, log); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}
	log.Info("Database schema is up to date")
}
