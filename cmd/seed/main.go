package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Domenick1991/flightfilter/config"
	"github.com/Domenick1991/flightfilter/internal/fixtures"
	"github.com/Domenick1991/flightfilter/internal/logger"
	"github.com/Domenick1991/flightfilter/internal/repository"
	"github.com/Domenick1991/flightfilter/internal/service/filter"
	"github.com/Domenick1991/flightfilter/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// seed loads the sample itineraries, anchored three days from now.
func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logg.Fatal("migrate schema", zap.Error(err))
	}

	svc := flights.NewFlightService(logg, repository.NewFlightRepository(pool), nil, filter.NewFilterService())
	created, err := svc.Import(ctx, fixtures.Sample(time.Now().UTC().AddDate(0, 0, 3)))
	if err != nil {
		logg.Fatal("import sample itineraries", zap.Error(err))
	}
	logg.Info("sample itineraries imported", zap.Int("count", len(created)))
}
