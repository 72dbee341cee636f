package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightfilter/config"
	"github.com/Domenick1991/flightfilter/internal/cache"
	"github.com/Domenick1991/flightfilter/internal/kafka"
	"github.com/Domenick1991/flightfilter/internal/logger"
	"github.com/Domenick1991/flightfilter/internal/repository"
	"github.com/Domenick1991/flightfilter/internal/service/filter"
	"github.com/Domenick1991/flightfilter/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Filter.CacheTTL())
	defer redisCache.Close()

	flightService := flights.NewFlightService(
		logg,
		repository.NewFlightRepository(pool),
		redisCache,
		filter.NewFilterService(filter.WithLogger(logg)),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SearchEventsTopic)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			event, err := kafka.DecodeSearchEvent(msg)
			if err != nil {
				logg.Warn("skipping search event", zap.Error(err))
				return nil
			}
			logg.Info("search executed",
				zap.String("query_id", event.QueryID),
				zap.String("filter", event.Filter),
				zap.String("query", event.Query),
				zap.String("fingerprint", event.Fingerprint),
				zap.Int("input_count", event.InputCount),
				zap.Int("result_count", event.ResultCount),
				zap.Time("executed_at", event.ExecutedAt),
			)
			return nil
		}); err != nil {
			logg.Error("consumer stopped", zap.Error(err))
		}
	}()

	refreshTicker := time.NewTicker(cfg.Worker.RefreshInterval())
	defer refreshTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-refreshTicker.C:
			n, err := flightService.RefreshCache(ctx)
			if err != nil {
				logg.Error("refresh flights cache", zap.Error(err))
				continue
			}
			logg.Debug("flights cache refreshed", zap.Int("itineraries", n))
		case s := <-sig:
			logg.Info("shutting down", zap.String("signal", s.String()))
			return
		}
	}
}
