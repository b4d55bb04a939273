package models_test

import (
	"testing"

	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugCollisions(t *testing.T) {
	db := testutil.NewDB(t)

	var slugs []string
	for i := 0; i < 3; i++ {
		article := &models.Article{Title: "Circular Futures"}
		require.NoError(t, db.Create(article).Error)
		slugs = append(slugs, article.Slug)
	}
	assert.Equal(t, []string{"circular-futures", "circular-futures-1", "circular-futures-2"}, slugs)

	issues := []string{}
	for i := 0; i < 2; i++ {
		issue := &models.MagazineIssue{Title: "Issue Ünö"}
		require.NoError(t, db.Create(issue).Error)
		issues = append(issues, issue.Slug)
	}
	assert.Equal(t, []string{"issue-uno", "issue-uno-1"}, issues)

	first := testutil.CreateCategory(t, db, "Design & Build")
	second := testutil.CreateCategory(t, db, "Design Build")
	assert.Equal(t, "design-build", first.Slug)
	assert.Equal(t, "design-build-1", second.Slug)
}

func TestSlug_KeptOnUpdate(t *testing.T) {
	db := testutil.NewDB(t)

	article := &models.Article{Title: "Original"}
	require.NoError(t, db.Create(article).Error)
	article.Title = "Renamed"
	require.NoError(t, db.Save(article).Error)
	assert.Equal(t, "original", article.Slug)
}

func TestDisplayImage(t *testing.T) {
	external := "https://cdn.example.org/a.jpg"

	assert.Equal(t, "/media/articles/a.jpg", models.Article{Image: "articles/a.jpg", ImageURL: &external}.DisplayImage())
	assert.Equal(t, external, models.Article{ImageURL: &external}.DisplayImage())
	assert.Equal(t, models.PlaceholderImage, models.Article{}.DisplayImage())
}

func TestStringers(t *testing.T) {
	org := "Makerspace"
	surplus := models.SurplusListing{Company: "Acme", MaterialType: models.MaterialWood}
	demand := models.DemandListing{Organisation: &org, MaterialWanted: models.MaterialMetal}

	assert.Equal(t, "Acme – wood", surplus.String())
	assert.Equal(t, "Makerspace needs metal", demand.String())
	assert.Equal(t, "Anonymous needs wood", models.DemandListing{MaterialWanted: models.MaterialWood}.String())
	assert.Equal(t, "Acme → Makerspace", models.Match{Surplus: &surplus, Demand: &demand}.String())
	assert.Equal(t, "? → Requester", models.Match{}.String())
}

func TestChoices(t *testing.T) {
	assert.True(t, models.MaterialFood.Valid())
	assert.False(t, models.MaterialType("glass").Valid())
}
