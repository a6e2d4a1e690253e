package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"riya-portal/internal/config"
	"riya-portal/internal/database/migration"
	dbpostgres "riya-portal/internal/database/postgres"
	"riya-portal/internal/database/seeder"
	"riya-portal/migrations"
)

func main() {
	seed := flag.Bool("seed", false, "run seeders after migrating")
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded set")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if *dir == "" {
		*dir = cfg.Database.MigrationsDir
	}
	runner := migration.Runner{Logger: logger}
	if *dir != "" {
		runner.Dir = *dir
	} else {
		runner.FS = fs.FS(migrations.FS)
	}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	logger.Printf("[Migration] up to date")

	if !*seed {
		return
	}
	seeds := seeder.Runner{Seeders: seeder.Defaults(cfg, logger), Logger: logger}
	if err := seeds.Run(ctx, db); err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
}
