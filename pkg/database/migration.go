package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded schema up to the latest version.
// databaseURL must use the pgx5:// scheme.
func RunMigrations(databaseURL string, logger *zap.Logger) error {
	m, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}

	logVersion(m, logger)
	return nil
}

// RollbackMigrations reverts the given number of applied migrations.
func RollbackMigrations(databaseURL string, steps int, logger *zap.Logger) error {
	m, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrate(m, logger)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка при откате миграций: %w", err)
	}

	logVersion(m, logger)
	return nil
}

func newMigrate(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке файлов миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при инициализации миграций: %w", err)
	}
	return m, nil
}

func logVersion(m *migrate.Migrate, logger *zap.Logger) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("миграции не применены")
	case err != nil:
		logger.Warn("не удалось получить версию миграций", zap.Error(err))
	case dirty:
		logger.Warn("база данных в состоянии dirty", zap.Uint("version", version))
	default:
		logger.Info("миграции выполнены", zap.Uint("version", version))
	}
}

func closeMigrate(m *migrate.Migrate, logger *zap.Logger) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil || dbErr != nil {
		logger.Warn("ошибка при закрытии миграций", zap.NamedError("source", sourceErr), zap.NamedError("database", dbErr))
	}
}
