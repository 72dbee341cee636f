package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightfilter/config"
	"github.com/Domenick1991/flightfilter/internal/bootstrap"
	"github.com/Domenick1991/flightfilter/internal/cache"
	"github.com/Domenick1991/flightfilter/internal/kafka"
	"github.com/Domenick1991/flightfilter/internal/logger"
	"github.com/Domenick1991/flightfilter/internal/repository"
	"github.com/Domenick1991/flightfilter/internal/service/filter"
	"github.com/Domenick1991/flightfilter/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logg.Fatal("migrate schema", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Filter.CacheTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(logg, cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logg.Warn("kafka unavailable, search events will be dropped", zap.Error(err))
	}

	filterService := filter.NewFilterService(
		filter.WithLogger(logg),
		filter.WithParallelism(cfg.Filter.ParallelThreshold, cfg.Filter.ChunkSize),
	)
	flightService := flights.NewFlightService(
		logg,
		repository.NewFlightRepository(pool),
		redisCache,
		filterService,
		flights.WithSearchEvents(producer.WithRetries(cfg.Kafka.PublishRetries), cfg.Kafka.SearchEventsTopic),
	)

	if err := bootstrap.Run(ctx, logg, cfg, flightService); err != nil {
		logg.Fatal("server error", zap.Error(err))
	}
}
