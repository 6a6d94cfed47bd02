package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizbank/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // driver: oracle
	_ "modernc.org/sqlite"         // driver: sqlite
)

// Supported values of db.driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
)

const defaultSQLiteDSN = "exam_system.db"

func init() {
	// go-ora accepts :1, :2 ... placeholders
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// SQLDriverName maps a configured driver onto the registered database/sql driver name.
func SQLDriverName(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "", DriverSQLite:
		return "sqlite", nil
	case DriverPostgres, "pgx":
		return "pgx", nil
	case DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q (expected sqlite|postgres|oracle)", driver)
	}
}

// NormalizeDriver returns the canonical driver name used by migrations and repositories.
func NormalizeDriver(driver string) string {
	switch strings.ToLower(driver) {
	case DriverPostgres, "pgx":
		return DriverPostgres
	case DriverOracle:
		return DriverOracle
	default:
		return DriverSQLite
	}
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = defaultSQLiteDSN
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Connect opens the configured database and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName, err := SQLDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if driverName == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	switch driverName {
	case "sqlite":
		// a single writer avoids SQLITE_BUSY and keeps :memory: databases on one connection
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	return db, nil
}
