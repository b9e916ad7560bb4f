package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/detect"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/fetch"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/pipeline"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/queue"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/store/postgres"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/pkg/config"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/pkg/graceful"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/pkg/location"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := postgres.RunMigrations(ctx, pool, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	fetcher := &fetch.Mux{HTTP: fetch.NewHTTPFetcher(cfg.Sweep.FetchTimeout)}
	if os.Getenv("MINIO_ENDPOINT") != "" {
		s3Fetcher, err := fetch.NewS3Fetcher()
		if err != nil {
			log.Fatalf("Failed to create object-store fetcher: %v", err)
		}
		fetcher.Object = s3Fetcher
	}

	detector := detect.NewClient(cfg.Detector.URL, cfg.Detector.Timeout)

	var geocoder location.Geocoder
	if cfg.Geocode.BaseURL != "" {
		geocoder = location.NewServiceWithBaseURL(cfg.Geocode.BaseURL, cfg.Geocode.Timeout)
	} else {
		geocoder = location.NewService(cfg.Geocode.Timeout)
	}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis ping failed, geocode caching disabled: %v", err)
		} else {
			geocoder = location.NewCachedService(geocoder, redisClient, cfg.Geocode.CacheTTL)
		}
	}

	var events pipeline.EventPublisher
	if cfg.Kafka.Enabled() {
		publisher := queue.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Printf("Failed to close Kafka publisher: %v", err)
			}
		}()
		events = publisher
	}

	sweeper := pipeline.NewSweeper(
		postgres.NewImageRepository(pool),
		postgres.NewMeasurementRepository(pool),
		postgres.NewLocationRepository(pool),
		fetcher,
		detector,
		geocoder,
		events,
	)

	if cfg.Sweep.Interval <= 0 {
		if _, err := sweeper.Run(ctx); err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		return
	}

	log.Printf("Sweeping every %s", cfg.Sweep.Interval)
	ticker := time.NewTicker(cfg.Sweep.Interval)
	defer ticker.Stop()

	for {
		if _, err := sweeper.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Sweep failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
