package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/marketplace/app/marketplace"
	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/cache"
	"github.com/dmitrymomot/marketplace/core/config"
	"github.com/dmitrymomot/marketplace/core/cookie"
	"github.com/dmitrymomot/marketplace/core/health"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/server"
	"github.com/dmitrymomot/marketplace/core/session"
	"github.com/dmitrymomot/marketplace/integration/backend"
	"github.com/dmitrymomot/marketplace/integration/database/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg marketplace.Config
	config.MustLoad(&cfg) // panic on error

	log := newLogger(cfg)

	// Current-user cache, shared across instances when backed by redis
	var rdb goredis.UniversalClient
	var checks []health.Check
	if cfg.Cache.Backend == cache.BackendRedis {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()
		rdb = client
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}
	users, err := cache.New[domain.User](cfg.Cache, rdb)
	if err != nil {
		log.Error("Failed to create user cache", logger.Component("cache"), logger.Error(err))
		os.Exit(1)
	}

	api, err := backend.NewFromConfig(cfg.Backend)
	if err != nil {
		log.Error("Failed to create backend client", logger.Component("backend"), logger.Error(err))
		os.Exit(1)
	}
	checks = append(checks, health.Check{Name: "backend", Fn: api.Ping})

	comp := composer.New(cfg.Composer, func(s session.Session) composer.Backend {
		return api.WithToken(s.AccessToken)
	}, users, composer.WithLogger(log))

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	app, err := marketplace.New(cfg, cookies, comp, api,
		marketplace.WithLogger(log),
		marketplace.WithHealthChecks(checks...),
	)
	if err != nil {
		log.Error("Failed to create application", logger.Error(err))
		os.Exit(1)
	}

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(s.Run(ctx, app))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}

func newLogger(cfg marketplace.Config) *slog.Logger {
	opts := []logger.Option{logger.WithProduction(cfg.AppName)}
	if cfg.IsDevelopment() {
		opts = []logger.Option{logger.WithDevelopment(cfg.AppName)}
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil && cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...)
}
