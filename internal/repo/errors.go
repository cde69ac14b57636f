package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"clicksoft-api/internal/domain"
)

// mapError turns driver and gorm errors into the domain sentinels, keeping
// the original error in the chain.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), isDupKey(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isFKViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrForeignKey, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isDupKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate") || strings.Contains(s, "unique constraint")
}

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
