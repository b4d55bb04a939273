package repositories

import (
	"testing"

	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Delete_Cascades(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleUser)
	other := testutil.CreateUser(t, db, "other", models.RoleUser)
	staff := testutil.CreateUser(t, db, "staff", models.RoleAdmin)

	ownSurplus := testutil.CreateSurplus(t, db, owner, "Owned", models.MaterialWood)
	otherSurplus := testutil.CreateSurplus(t, db, other, "Kept", models.MaterialWood)
	otherDemand := testutil.CreateDemand(t, db, other, "Makers", models.MaterialWood)

	require.NoError(t, db.Create(&models.Match{SurplusID: ownSurplus.ID, DemandID: otherDemand.ID, SuggestedByID: &staff.ID}).Error)
	kept := models.Match{SurplusID: otherSurplus.ID, DemandID: otherDemand.ID, SuggestedByID: &owner.ID}
	require.NoError(t, db.Create(&kept).Error)

	article := models.NewArticle()
	article.Title = "Written by owner"
	article.AuthorID = &owner.ID
	require.NoError(t, db.Create(article).Error)

	require.NoError(t, NewUserRepository().Delete(owner.ID))

	var count int64
	db.Model(&models.SurplusListing{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count, "owned listings are deleted")

	db.Model(&models.Match{}).Count(&count)
	assert.Equal(t, int64(1), count, "matches of owned listings are deleted")

	var reloaded models.Match
	require.NoError(t, db.First(&reloaded, kept.ID).Error)
	assert.Nil(t, reloaded.SuggestedByID, "suggester is cleared")

	var reloadedArticle models.Article
	require.NoError(t, db.First(&reloadedArticle, article.ID).Error)
	assert.Nil(t, reloadedArticle.AuthorID, "author is cleared")

	_, err := NewUserRepository().FindByID(owner.ID)
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_Delete_Missing(t *testing.T) {
	testutil.NewDB(t)
	err := NewUserRepository().Delete(999)
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_Taken(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "Alice", models.RoleUser)
	repo := NewUserRepository()

	taken, err := repo.UsernameTaken("alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken("ALICE@example.org")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.UsernameTaken("bob")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestConstraintErrors(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleUser)

	err := db.Create(&models.SurplusListing{
		UserID:       owner.ID + 100,
		Company:      "Ghost",
		Location:     "Leeds",
		MaterialType: models.MaterialWood,
		ContactEmail: "ghost@example.org",
	}).Error
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), err.Error())
	assert.False(t, IsDuplicateKey(err))

	err = db.Create(&models.User{Username: "owner", Password: "x"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsForeignKeyViolation(nil))
}
