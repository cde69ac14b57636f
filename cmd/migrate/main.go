// Command migrate manages the database schema and one-off maintenance tasks.
//
//	migrate [-config path] up|down|reset|status|version
//	migrate seed-user -name "Ana Silva" -email ana@x.com -password secret123
//	migrate prune-tokens
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clicksoft-api/internal/core/config"
	"clicksoft-api/internal/core/database"
	"clicksoft-api/internal/core/logger"
	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/repo"
	"clicksoft-api/internal/service"
	"clicksoft-api/internal/validation"
	"clicksoft-api/migrations"
)

var errUsage = errors.New("usage: migrate [-config path] up|down|reset|status|version|seed-user|prune-tokens")

func main() {
	_ = godotenv.Load()
	cfgPath := flag.String("config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, flag.Args()); err != nil {
		log.Error("migrate failed", zap.Error(err))
		cleanup()
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	db, err := database.Open(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "up", "down", "reset", "status", "version":
		if cfg.DB.Driver == "mysql" {
			// SQL migrations are written for postgres; mysql schemas come from gorm.
			if cmd != "up" {
				return fmt.Errorf("%s is not supported for mysql", cmd)
			}
			return repo.AutoMigrate(db)
		}
		return database.Migrate(ctx, sqlDB, migrations.FS, "postgres", cmd, log)
	case "seed-user":
		return seedUser(ctx, cfg, db, log, rest)
	case "prune-tokens":
		n, err := repo.NewTokenRepo(db).DeleteExpired(ctx, time.Now())
		if err != nil {
			return err
		}
		log.Info("expired tokens pruned", zap.Int64("deleted", n))
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// seedUser registers a user unless the email is already taken.
func seedUser(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("seed-user", flag.ContinueOnError)
	name := fs.String("name", "Administrador", "full name")
	email := fs.String("email", "", "email (required)")
	password := fs.String("password", "", "password, at least 8 chars (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	svc, err := service.NewAuthService(service.Deps{Store: repo.NewStore(db), Log: log}, nil, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	u, err := svc.Register(ctx, validation.RegisterPayload{FullName: *name, Email: *email, Password: *password})
	switch domain.KindOf(err) {
	case domain.KindConflict:
		log.Info("seed user already exists", zap.String("email", *email))
		return nil
	case domain.KindValidation:
		var de *domain.Error
		errors.As(err, &de)
		return fmt.Errorf("invalid user: %v", de.Fields)
	}
	if err != nil {
		return err
	}
	log.Info("seed user created", zap.Uint("id", u.ID), zap.String("email", u.Email))
	return nil
}
