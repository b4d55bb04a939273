package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/callsoso/callsoso/config"
	"github.com/callsoso/callsoso/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Pure Go SQLite driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

var DB *gorm.DB

// Initialize sets up the global GORM connection and migrates the schema
func Initialize(cfg *config.Config) error {
	db, err := Open(cfg.Database, gormLogLevel(cfg))
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	DB = db

	slog.Info("Connected to database", slog.String("engine", cfg.Database.Engine))
	return nil
}

// Open connects to the configured database and tunes the pool
func Open(cfg config.DatabaseConfig, level logger.LogLevel) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	newLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Engine, err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	if cfg.Engine == config.EngineSQLite {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Dialector picks the gorm driver for the configured engine
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Engine {
	case config.EnginePostgres:
		return postgres.Open(cfg.URL), nil
	case config.EngineMySQL:
		return mysql.Open(mysqlDSN(cfg.URL)), nil
	case config.EngineSQLite:
		return sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			DSN:        SQLiteDSN(cfg.Name),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database engine %q", cfg.Engine)
	}
}

// SQLiteDSN adds the pragmas the schema relies on (foreign keys for
// cascades) to a SQLite file name or URI.
func SQLiteDSN(name string) string {
	sep := "?"
	if strings.Contains(name, "?") {
		sep = "&"
	}
	return name + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// mysqlDSN makes DATETIME columns scan into time.Time.
func mysqlDSN(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "parseTime=true"
}

func gormLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.Debug {
		return logger.Info
	}
	return logger.Warn
}
