package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "go.uber.org/automaxprocs"

	"clicksoft-api/internal/broker"
	"clicksoft-api/internal/core/auth"
	"clicksoft-api/internal/core/cache"
	"clicksoft-api/internal/core/config"
	"clicksoft-api/internal/core/database"
	"clicksoft-api/internal/core/logger"
	"clicksoft-api/internal/core/server"
	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/repo"
	"clicksoft-api/internal/service"
	"clicksoft-api/internal/transport/http/router"
)

const shutdownGrace = 10 * time.Second

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log.Named("stdlog"), zapcore.InfoLevel)()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api stopped with error", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
	log.Info("api stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
		log.Info("automigrate done")
	}

	tokens, closeTokens, err := tokenStore(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closeTokens()

	events, closeEvents := eventPublisher(cfg, log)
	defer closeEvents()

	jwter := &auth.JWTer{
		Secret: []byte(cfg.Auth.Secret),
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL(),
	}
	sessions := auth.NewSessions(jwter, tokens, log)

	deps := service.Deps{Store: repo.NewStore(db), Events: events, Log: log.Named("service")}
	authSvc, err := service.NewAuthService(deps, sessions, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mode := gin.ReleaseMode
	if cfg.App.Env == "local" {
		mode = gin.DebugMode
	}
	engine := router.NewAPIEngine(router.Deps{
		Log:       log,
		Auth:      authSvc,
		Customers: service.NewCustomerService(deps),
		Contacts:  service.NewContactService(deps),
		Sessions:  sessions,
		Registry:  reg,
	}, router.Options{
		Version:        cfg.App.Version,
		Mode:           mode,
		CORSOrigins:    cfg.App.HTTP.CORSOrigins,
		MaxConcurrent:  cfg.App.HTTP.MaxConcurrent,
		MaxBodyBytes:   cfg.App.HTTP.MaxBodyBytes,
		RequestTimeout: time.Duration(cfg.App.HTTP.RequestTimeoutSec) * time.Second,
	})

	srv := server.BuildServer(
		cfg.App.HTTP.Addr(), engine,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	log.Info("api starting",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("addr", srv.Addr),
		zap.String("token_store", cfg.Auth.Store),
		zap.Bool("broker", cfg.Broker.Enabled),
	)
	return server.Run(ctx, srv, shutdownGrace, log)
}

func nop() {}

func closeWith(c io.Closer, name string, log *zap.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("close "+name, zap.Error(err))
		}
	}
}

func tokenStore(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) (domain.TokenStore, func(), error) {
	if cfg.Auth.Store != "redis" {
		return repo.NewTokenRepo(db), nop, nil
	}
	rdb := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}
	log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return cache.NewTokenStore(rdb), closeWith(rdb, "redis", log), nil
}

// eventPublisher connects to the broker when enabled. A broker that cannot be
// reached degrades to dropping events; it never blocks startup.
func eventPublisher(cfg *config.Config, log *zap.Logger) (domain.EventPublisher, func()) {
	if !cfg.Broker.Enabled {
		return broker.Noop{}, nop
	}
	pub, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue)
	if err != nil {
		log.Warn("broker unavailable, change events disabled", zap.Error(err))
		return broker.Noop{}, nop
	}
	log.Info("broker connected", zap.String("queue", cfg.Broker.Queue))
	return pub, closeWith(pub, "broker", log)
}
