package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/userdir/user-directory/internal/api"
	"github.com/userdir/user-directory/internal/core/ports"
	"github.com/userdir/user-directory/internal/core/service"
	"github.com/userdir/user-directory/internal/infrastructure/db/mongo"
	"github.com/userdir/user-directory/internal/infrastructure/db/redis"
	"github.com/userdir/user-directory/internal/infrastructure/memory"
	"github.com/userdir/user-directory/internal/infrastructure/openweather"
	"github.com/userdir/user-directory/internal/pkg/config"
	"github.com/userdir/user-directory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store selection (configuration-time, not runtime branching) ---
	var (
		repo ports.UserRepository
		db   *mongodriver.Database
	)
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		db = database
		repo = mongo.NewUserRepository(database)
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo user store")
	default:
		repo = memory.NewUserRepository()
		log.Info().Msg("using in-memory user store")
	}

	// --- Redis (rate limiting); optional ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() {
			_ = rdb.Close()
		}()
	} else {
		log.Warn().Msg("no redis configured, rate limiting disabled")
	}

	geoClient := openweather.NewClient(cfg.OpenWeather.BaseURL, cfg.OpenWeather.APIKey, log)
	users := service.NewUserService(repo, geoClient, log)

	e := api.NewRouter(cfg, users, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
