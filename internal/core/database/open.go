package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clicksoft-api/internal/core/config"
)

func OptsFrom(c config.DB) Opts {
	return Opts{
		Driver:             c.Driver,
		DSN:                c.DSN,
		Username:           c.Username,
		Password:           c.Password,
		MaxOpenConns:       c.MaxOpenConns,
		MaxIdleConns:       c.MaxIdleConns,
		ConnMaxLifetimeMin: c.ConnMaxLifetimeMin,
		LogLevel:           c.LogLevel,
	}
}

func Open(c config.DB, l *zap.Logger) (*gorm.DB, error) { return NewGorm(OptsFrom(c), l) }
