package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"bookstore/internal/adapters/out/postgres/bookrepo"
	"bookstore/internal/adapters/out/postgres/orderrepo"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// DefaultOptions are used by Open when no options are given.
var DefaultOptions = Options{
	MaxOpenConns:    20,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
	LogLevel:        logger.Warn,
}

// DSN builds a lib/pq connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects through lib/pq and wraps the pool in GORM.
// Driver errors therefore surface as *pq.Error.
func Open(dsn string, opts ...Options) (*gorm.DB, error) {
	o := DefaultOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(o.ConnMaxLifetime)

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(o.LogLevel),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the tables this module owns or reads.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.UserDTO{},
		&bookrepo.BookDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
	)
}
