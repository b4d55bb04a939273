package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/callsoso/callsoso/config"
	"github.com/callsoso/callsoso/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DBConnection represents a database connection
type DBConnection struct {
	DB     *gorm.DB
	Name   string
	Engine string
	Models []interface{}
}

// NewDBConnection creates a new database connection
func NewDBConnection(name string, cfg config.DatabaseConfig) (*DBConnection, error) {
	if cfg.URL == "" && cfg.Name == "" {
		return nil, errors.New("database URL or name cannot be empty")
	}

	db, err := Open(cfg, logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}

	slog.Info("Connected to database", slog.String("name", name), slog.String("engine", cfg.Engine))

	return &DBConnection{
		DB:     db,
		Name:   name,
		Engine: cfg.Engine,
		Models: models.All(),
	}, nil
}

// Migrate migrates the database schema
func (c *DBConnection) Migrate() error {
	slog.Info("Migrating database schema", slog.String("name", c.Name))
	if err := c.DB.AutoMigrate(c.Models...); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	slog.Info("Database schema migrated", slog.String("name", c.Name))
	return nil
}

// joinTables are the many-to-many tables copied verbatim after their owners.
var joinTables = []string{
	"article_categories",
	"resource_categories",
	"magazine_issue_categories",
}

// CopyData copies every row from source to target, keeping primary keys.
// It is used to move a development SQLite database onto PostgreSQL.
// The target schema must already be migrated and empty.
func CopyData(source, target *DBConnection) error {
	slog.Info("Starting data copy", slog.String("from", source.Name), slog.String("to", target.Name))

	err := target.DB.Transaction(func(tx *gorm.DB) error {
		steps := []func() error{
			func() error { return copyTable[models.User](source.DB, tx, "users") },
			func() error { return copyTable[models.Category](source.DB, tx, "categories") },
			func() error { return copyTable[models.SurplusListing](source.DB, tx, "surplus listings") },
			func() error { return copyTable[models.DemandListing](source.DB, tx, "demand listings") },
			func() error { return copyTable[models.Match](source.DB, tx, "matches") },
			func() error { return copyTable[models.Article](source.DB, tx, "articles") },
			func() error { return copyTable[models.Resource](source.DB, tx, "resources") },
			func() error { return copyTable[models.MagazineIssue](source.DB, tx, "magazine issues") },
			func() error { return copyTable[models.PopularArticle](source.DB, tx, "popular articles") },
			func() error { return copyTable[models.Collaboration](source.DB, tx, "collaborations") },
			func() error { return copyTable[models.Contribution](source.DB, tx, "contributions") },
			func() error { return copyTable[models.FoundersList](source.DB, tx, "founders list") },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}

		for _, table := range joinTables {
			var rows []map[string]interface{}
			if err := source.DB.Table(table).Find(&rows).Error; err != nil {
				return fmt.Errorf("failed to fetch %s: %w", table, err)
			}
			if len(rows) == 0 {
				continue
			}
			if err := tx.Table(table).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to copy %s: %w", table, err)
			}
		}

		if target.Engine == config.EnginePostgres {
			return resetSequences(tx)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Data copy completed")
	return nil
}

func copyTable[T any](source, target *gorm.DB, label string) error {
	var rows []T
	if err := source.Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to fetch %s: %w", label, err)
	}
	slog.Info("Copying rows", slog.String("table", label), slog.Int("count", len(rows)))
	if len(rows) == 0 {
		return nil
	}

	// Keep stored slugs and timestamps exactly as they are
	err := target.Session(&gorm.Session{SkipHooks: true}).
		Omit(clause.Associations).
		CreateInBatches(&rows, 500).Error
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", label, err)
	}
	return nil
}

// resetSequences moves PostgreSQL id sequences past the copied keys.
func resetSequences(tx *gorm.DB) error {
	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: tx}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		table := stmt.Schema.Table
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
			table, table,
		)
		if err := tx.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
