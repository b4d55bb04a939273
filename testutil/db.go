// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"

	"github.com/callsoso/callsoso/config"
	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture user.
const Password = "correct-horse-battery"

// NewDB opens a private in-memory SQLite database with the full schema and
// installs it as database.DB for the duration of the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Engine: config.EngineSQLite,
		Name:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with the fixture password.
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.org",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateSurplus inserts a surplus listing owned by user.
func CreateSurplus(t *testing.T, db *gorm.DB, user *models.User, company string, material models.MaterialType) *models.SurplusListing {
	t.Helper()

	listing := &models.SurplusListing{
		UserID:        user.ID,
		Company:       company,
		Location:      "Leeds",
		MaterialType:  material,
		MonthlyVolume: 10,
		ContactEmail:  "surplus@" + company + ".example.org",
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

// CreateDemand inserts a demand listing owned by user.
func CreateDemand(t *testing.T, db *gorm.DB, user *models.User, organisation string, material models.MaterialType) *models.DemandListing {
	t.Helper()

	listing := &models.DemandListing{
		UserID:         user.ID,
		Location:       "Bristol",
		MaterialWanted: material,
		QuantityNeeded: 5,
	}
	if organisation != "" {
		listing.Organisation = &organisation
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

// CreateCategory inserts a category; its slug is derived from the name.
func CreateCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
