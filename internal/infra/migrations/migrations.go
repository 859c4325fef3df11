// Package migrations применяет SQL-миграции схемы, встроенные в бинарник.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// ErrMigrate ошибка применения миграций
var ErrMigrate = errors.New("migrations: failed to apply")

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
}

// Up применяет все миграции к базе dbURL (postgres://...).
// Повторный запуск без новых миграций не является ошибкой.
func Up(dbURL string, logger Logger) error {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("%w: open source: %v", ErrMigrate, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return fmt.Errorf("%w: init: %v", ErrMigrate, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Migrations applied: version=%d, dirty=%t", version, dirty)

	return nil
}
