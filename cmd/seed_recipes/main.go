package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/config"
	"github.com/pageza/fridge-recipes/backend/internal/database"
	"github.com/pageza/fridge-recipes/backend/internal/logging"
)

func main() {
	seedFile := flag.String("file", "", "YAML file with sample recipes (defaults to the embedded catalog)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.DBDriver == config.DriverSQLite && cfg.DatabaseURL == config.DefaultSQLiteDSN {
		logger.Warn("Seeding the default in-memory database has no lasting effect; set DB_DRIVER and DATABASE_URL")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	var recipes []database.SeedRecipe
	if *seedFile != "" {
		recipes, err = database.LoadSeedFile(*seedFile)
	} else {
		recipes, err = database.DefaultSeed()
	}
	if err != nil {
		logger.Fatalf("Failed to load seed recipes: %v", err)
	}

	if err := database.SeedSampleRecipes(db, recipes); err != nil {
		logger.Fatalf("Failed to seed recipes: %v", err)
	}

	logger.WithField("count", len(recipes)).Info("Seeded sample recipes")
}
