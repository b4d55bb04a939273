package database

import (
	"path/filepath"
	"testing"

	"github.com/callsoso/callsoso/config"
	"github.com/callsoso/callsoso/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T, name string) *DBConnection {
	t.Helper()
	conn, err := NewDBConnection(name, config.DatabaseConfig{
		Engine: config.EngineSQLite,
		Name:   filepath.Join(t.TempDir(), name+".sqlite3"),
	})
	require.NoError(t, err)
	require.NoError(t, conn.Migrate())
	t.Cleanup(func() {
		if sqlDB, err := conn.DB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

func TestCopyData(t *testing.T) {
	source := openSQLite(t, "source")
	target := openSQLite(t, "target")

	user := &models.User{Username: "owner", Email: "owner@example.org", Password: "x"}
	require.NoError(t, source.DB.Create(user).Error)
	category := &models.Category{Name: "Policy"}
	require.NoError(t, source.DB.Create(category).Error)
	article := &models.Article{Title: "Reuse", Slug: "custom-slug", IsPublished: true, Categories: []models.Category{*category}}
	require.NoError(t, source.DB.Create(article).Error)
	require.NoError(t, source.DB.Create(&models.SurplusListing{
		UserID: user.ID, Company: "Acme", Location: "Leeds",
		MaterialType: models.MaterialWood, MonthlyVolume: 1, ContactEmail: "a@example.org",
	}).Error)

	require.NoError(t, CopyData(source, target))

	var copied models.Article
	require.NoError(t, target.DB.Preload("Categories").First(&copied, article.ID).Error)
	assert.Equal(t, "custom-slug", copied.Slug)
	require.Len(t, copied.Categories, 1)
	assert.Equal(t, "Policy", copied.Categories[0].Name)

	var listings int64
	target.DB.Model(&models.SurplusListing{}).Count(&listings)
	assert.Equal(t, int64(1), listings)
}

func TestNewDBConnection_RequiresTarget(t *testing.T) {
	_, err := NewDBConnection("empty", config.DatabaseConfig{Engine: config.EngineSQLite})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "db.sqlite3?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLiteDSN("db.sqlite3"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLiteDSN("file:x?mode=memory"))
}

func TestDialector_UnknownEngine(t *testing.T) {
	_, err := Dialector(config.DatabaseConfig{Engine: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t, "u:p@tcp(db:3306)/callsoso?parseTime=true", mysqlDSN("u:p@tcp(db:3306)/callsoso"))
	assert.Equal(t, "u:p@tcp(db)/c?charset=utf8mb4&parseTime=true", mysqlDSN("u:p@tcp(db)/c?charset=utf8mb4"))
	assert.Equal(t, "u:p@tcp(db)/c?parseTime=false", mysqlDSN("u:p@tcp(db)/c?parseTime=false"))
}
