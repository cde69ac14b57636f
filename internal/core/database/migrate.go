package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const migrationsTable = "schema_migrations"

// gooseLogger routes goose output into zap.
type gooseLogger struct{ l *zap.SugaredLogger }

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.l.Infof(strings.TrimSpace(format), v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.l.Errorf(strings.TrimSpace(format), v...)
}

// Migrate runs a goose command (up, down, status, version, reset) against db
// using the migrations in fsys.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS, dialect, command string, l *zap.Logger) error {
	if l == nil {
		l = zap.NewNop()
	}
	goose.SetBaseFS(fsys)
	goose.SetTableName(migrationsTable)
	goose.SetLogger(gooseLogger{l.Named("goose").Sugar()})
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "reset":
		err = goose.ResetContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
