package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"quizbank/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies every pending up migration for the given driver.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string) error {
	driver = NormalizeDriver(driver)
	if driver == DriverOracle {
		return runOracleMigrations(ctx, db)
	}

	m, err := newMigrate(db, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply %s migrations: %w", driver, err)
	}
	logVersion(m, driver)
	return nil
}

// RollbackMigrations reverts the given number of migrations. Oracle migrations are forward only.
func RollbackMigrations(db *sqlx.DB, driver string, steps int) error {
	driver = NormalizeDriver(driver)
	if driver == DriverOracle {
		return fmt.Errorf("rollback is not supported for %s", driver)
	}
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := newMigrate(db, driver)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not roll back %s migrations: %w", driver, err)
	}
	logVersion(m, driver)
	return nil
}

// newMigrate builds a migrator over the shared connection.
// m.Close is never called because it would close db as well.
func newMigrate(db *sqlx.DB, driver string) (*migrate.Migrate, error) {
	var (
		instance migratedb.Driver
		err      error
	)
	switch driver {
	case DriverSQLite:
		instance, err = sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{})
	case DriverPostgres:
		instance, err = pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration driver: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s migration driver: %w", driver, err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("could not read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("could not initialise migrations: %w", err)
	}
	return m, nil
}

func logVersion(m *migrate.Migrate, driver string) {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Get().Warn("Could not read migration version", zap.String("driver", driver), zap.Error(err))
		return
	}
	logger.Get().Info("Migrations completed",
		zap.String("driver", driver),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
}

const oracleVersionTable = `CREATE TABLE schema_migrations (
  version VARCHAR2(255) PRIMARY KEY,
  applied_at TIMESTAMP NOT NULL
)`

// runOracleMigrations executes the .up.sql files in order, one statement at a time,
// and records each applied file in schema_migrations.
func runOracleMigrations(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, oracleVersionTable); err != nil && !isOracleNameInUse(err) {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/oracle/*.up.sql")
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		version := strings.TrimSuffix(file[strings.LastIndex(file, "/")+1:], ".up.sql")

		var applied int
		if err := db.GetContext(ctx, &applied, db.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`), version); err != nil {
			return fmt.Errorf("could not check migration %s: %w", version, err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", version, err)
			}
		}

		if _, err := db.ExecContext(ctx, db.Rebind(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`), version, time.Now()); err != nil {
			return fmt.Errorf("could not record migration %s: %w", version, err)
		}
		logger.Get().Info("Executed migration", zap.String("driver", DriverOracle), zap.String("version", version))
	}
	return nil
}

// SplitStatements splits a script on semicolons that end a line and drops comment-only chunks.
func SplitStatements(script string) []string {
	var out []string
	for _, chunk := range strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), ";\n") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "--") {
				lines = append(lines, line)
			}
		}
		stmt := strings.TrimSuffix(strings.TrimSpace(strings.Join(lines, "\n")), ";")
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func isOracleNameInUse(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00955")
}

