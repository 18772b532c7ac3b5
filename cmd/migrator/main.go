package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/proxx/internal/config"
	"github.com/vancomm/proxx/internal/database"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "/run/config.yaml", "config file path")
	flag.StringVar(&configPath, "c", "/run/config.yaml", "config file path (shorthand)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	c, err := config.Read(configPath)
	if err != nil {
		log.Fatalf("unable to read config %s: %s", configPath, err)
	}
	if !c.Postgres.Enabled() {
		log.Fatal("no database configured")
	}

	version, dirty, err := database.Migrate(c.Postgres.DatabaseURL(), database.Migrations)
	if err != nil {
		log.WithError(err).Error("failed to migrate")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
