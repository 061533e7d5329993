package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/config"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/repository"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var n int

	flag.IntVar(&n, "n", 9, "number of demo employees to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to open database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, so ping to verify the DSN before seeding
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if n <= 0 {
		logger.Error("employee count must be positive", slog.Int("n", n))
		return
	}

	seeder := seed.NewSeeder(cfg, dbpool, repo)
	if err := seeder.Run(context.Background(), n); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("demo organization seeded", slog.String("org_id", cfg.Seed.OrgID), slog.Int("employees", n))
}
