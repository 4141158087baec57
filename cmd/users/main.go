// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains users main function to start the accounts service.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	redisclient "github.com/absmach/accounts/internal/clients/redis"
	"github.com/absmach/accounts/internal/env"
	mglog "github.com/absmach/accounts/logger"
	"github.com/absmach/accounts/pkg/errors"
	jaegerclient "github.com/absmach/accounts/pkg/jaeger"
	pgclient "github.com/absmach/accounts/pkg/postgres"
	"github.com/absmach/accounts/pkg/prometheus"
	"github.com/absmach/accounts/pkg/server"
	httpserver "github.com/absmach/accounts/pkg/server/http"
	"github.com/absmach/accounts/pkg/uuid"
	"github.com/absmach/accounts/users"
	"github.com/absmach/accounts/users/api"
	"github.com/absmach/accounts/users/cache"
	uevents "github.com/absmach/accounts/users/events"
	"github.com/absmach/accounts/users/hasher"
	"github.com/absmach/accounts/users/middleware"
	"github.com/absmach/accounts/users/passwords"
	upostgres "github.com/absmach/accounts/users/postgres"
	"github.com/absmach/accounts/users/tokens"
	"github.com/absmach/accounts/users/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	svcName        = "users"
	envPrefix      = "AC_USERS_"
	envPrefixDB    = "AC_USERS_DB_"
	envPrefixHTTP  = "AC_USERS_HTTP_"
	defDB          = "accounts"
	defSvcHTTPPort = "9002"
	dotenvFile     = ".env"
)

type config struct {
	LogLevel      string        `env:"AC_USERS_LOG_LEVEL"        envDefault:"info"`
	AdminEmail    string        `env:"AC_USERS_ADMIN_EMAIL"      envDefault:""`
	AdminPassword string        `env:"AC_USERS_ADMIN_PASSWORD"   envDefault:""`
	TokenCacheTTL time.Duration `env:"AC_USERS_TOKEN_CACHE_TTL"  envDefault:"1h"`
	LoginRate     float64       `env:"AC_USERS_LOGIN_RATE"       envDefault:"1"`
	LoginBurst    int           `env:"AC_USERS_LOGIN_BURST"      envDefault:"10"`
	CORSOrigins   []string      `env:"AC_USERS_CORS_ORIGINS"     envDefault:"*"`
	TrustedProxy  []string      `env:"AC_USERS_TRUSTED_PROXIES"  envDefault:""`
	JaegerURL     url.URL       `env:"AC_USERS_JAEGER_URL"       envDefault:"http://localhost:4318/v1/traces"`
	TraceRatio    float64       `env:"AC_USERS_JAEGER_TRACE_RATIO" envDefault:"1.0"`
	ESURL         string        `env:"AC_USERS_ES_URL"           envDefault:"redis://localhost:6379/1"`
	CacheURL      string        `env:"AC_USERS_CACHE_URL"        envDefault:"redis://localhost:6379/0"`
	DBWait        time.Duration `env:"AC_USERS_DB_WAIT"          envDefault:"30s"`
	InstanceID    string        `env:"AC_USERS_INSTANCE_ID"      envDefault:""`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	if err := env.Load(dotenvFile); err != nil {
		log.Fatalf("failed to load %s: %s", dotenvFile, err)
	}

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err.Error())
	}

	logger, err := mglog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err.Error())
	}

	var exitCode int
	defer mglog.ExitWithError(&exitCode)

	if cfg.InstanceID == "" {
		if cfg.InstanceID, err = uuid.New().ID(); err != nil {
			logger.Error(fmt.Sprintf("failed to generate instanceID: %s", err))
			exitCode = 1
			return
		}
	}

	passConfig := passwords.Config{}
	if err := env.Parse(&passConfig, env.Options{Prefix: envPrefix}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s password configuration : %s", svcName, err))
		exitCode = 1
		return
	}

	dbConfig := pgclient.Config{Name: defDB}
	if err := env.Parse(&dbConfig, env.Options{Prefix: envPrefixDB}); err != nil {
		logger.Error(err.Error())
		exitCode = 1
		return
	}
	db, err := pgclient.Connect(dbConfig)
	if err != nil {
		logger.Error(err.Error())
		exitCode = 1
		return
	}
	defer db.Close()

	notify := func(err error, next time.Duration) {
		logger.Warn(fmt.Sprintf("database is not ready, retrying in %s: %s", next, err))
	}
	if err := pgclient.WaitReady(ctx, db, cfg.DBWait, notify); err != nil {
		logger.Error(fmt.Sprintf("failed to reach database: %s", err))
		exitCode = 1
		return
	}
	if err := pgclient.Migrate(db, *upostgres.Migration()); err != nil {
		logger.Error(err.Error())
		exitCode = 1
		return
	}

	tp, err := jaegerclient.NewProvider(ctx, svcName, cfg.JaegerURL, cfg.InstanceID, cfg.TraceRatio)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to init Jaeger: %s", err))
		exitCode = 1
		return
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("error shutting down tracer provider: %v", err))
		}
	}()
	tracer := tp.Tracer(svcName)

	cacheClient, err := redisclient.Connect(cfg.CacheURL)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to connect to cache: %s", err))
		exitCode = 1
		return
	}
	defer cacheClient.Close()

	svc, err := newService(ctx, db, dbConfig, cacheClient, tracer, cfg, passConfig, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to setup service: %s", err))
		exitCode = 1
		return
	}

	if err := createAdmin(ctx, cfg, svc, logger); err != nil {
		logger.Error(fmt.Sprintf("failed to create admin: %s", err))
		exitCode = 1
		return
	}

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.Parse(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err.Error()))
		exitCode = 1
		return
	}

	limit := rate.Inf
	if cfg.LoginRate > 0 {
		limit = rate.Limit(cfg.LoginRate)
	}
	proxies, err := api.ParseTrustedProxies(cfg.TrustedProxy)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to parse trusted proxies : %s", err))
		exitCode = 1
		return
	}
	limiter := api.NewRateLimiter(limit, cfg.LoginBurst, proxies...)
	go limiter.Cleanup(ctx)

	mux := chi.NewRouter()
	handler := api.MakeHandler(svc, mux, logger, cfg.InstanceID, cfg.CORSOrigins, limiter)
	httpSrv := httpserver.NewServer(ctx, cancel, svcName, httpServerConfig, handler, logger)

	g.Go(func() error {
		return httpSrv.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, httpSrv)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("users service terminated: %s", err))
	}
}

func newService(ctx context.Context, db *sqlx.DB, dbConfig pgclient.Config, cacheClient *redis.Client, tracer trace.Tracer, c config, pc passwords.Config, logger *slog.Logger) (users.Service, error) {
	database := pgclient.NewDatabase(db, dbConfig, tracer)

	repo := upostgres.NewRepository(database)
	tokenRepo := upostgres.NewTokenRepository(database)
	locationRepo := upostgres.NewLocationRepository(database)
	roleRepo := upostgres.NewRoleRepository(database)
	tokenCache := cache.NewTokenCache(cacheClient, c.TokenCacheTTL)

	validator, err := passwords.New(pc)
	if err != nil {
		return nil, err
	}

	svc := users.NewService(repo, tokenRepo, tokenCache, locationRepo, roleRepo, hasher.New(), validator, tokens.New(), uuid.New())

	svc, err = uevents.NewEventStoreMiddleware(ctx, svc, c.ESURL)
	if err != nil {
		return nil, err
	}

	svc = tracing.New(svc, tracer)
	svc = middleware.LoggingMiddleware(svc, logger)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = middleware.MetricsMiddleware(svc, counter, latency)

	return svc, nil
}

// createAdmin creates the configured superuser unless it already exists.
func createAdmin(ctx context.Context, c config, svc users.Service, logger *slog.Logger) error {
	if c.AdminEmail == "" {
		return nil
	}

	_, err := svc.CreateSuperuser(ctx, users.User{Email: c.AdminEmail}, c.AdminPassword)
	switch {
	case err == nil:
		logger.Info(fmt.Sprintf("created admin %s", c.AdminEmail))
	case errors.Contains(err, users.ErrDuplicateEmail):
		logger.Info(fmt.Sprintf("admin %s already exists", c.AdminEmail))
	default:
		return err
	}

	return nil
}
