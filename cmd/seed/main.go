package main

import (
	"flag"
	"log"

	"corporate-site/config"
	"corporate-site/database"
	"corporate-site/internal/infra/logging"
	"corporate-site/internal/seed"

	"go.uber.org/zap"
)

func main() {
	path := flag.String("fixture", "fixtures/site.yaml", "YAML fixture to load")
	flag.Parse()

	config.LoadEnv()
	logger, err := logging.New(config.Current.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	f, err := seed.Load(*path)
	if err != nil {
		logger.Fatal("load fixture", zap.Error(err))
	}

	database.InitDB()
	if err := seed.Apply(database.DB, f, logger); err != nil {
		logger.Fatal("apply fixture", zap.String("fixture", *path), zap.Error(err))
	}
}
