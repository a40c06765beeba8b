// cmd/migrate/main.go
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/database"
)

func main() {
	command := flag.String("command", "up", "migration command: up, down, version or seed")
	steps := flag.Int("steps", 1, "number of migrations to roll back with -command down")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	dsn := cfg.Database.DSN()

	switch *command {
	case "up":
		if err := database.RunMigrations(dsn); err != nil {
			logrus.Fatal(err)
		}
	case "down":
		if err := database.RollbackMigrations(dsn, *steps); err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("steps", *steps).Info("Migrations rolled back")
	case "version":
		version, dirty, err := database.MigrationVersion(dsn)
		if err != nil {
			logrus.Fatal(err)
		}
		logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Current schema version")
	case "seed":
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			logrus.Fatal("Failed to initialize database: ", err)
		}
		defer database.Close(db)
		if err := database.SeedInitialData(db, cfg.Seed); err != nil {
			logrus.Fatal("Failed to seed database: ", err)
		}
		logrus.Info("Seed data applied")
	default:
		logrus.Errorf("unknown command %q", *command)
		flag.Usage()
		os.Exit(2)
	}
}
