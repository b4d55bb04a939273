package repositories

import (
	"testing"
	"time"

	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func createArticle(t *testing.T, db *gorm.DB, title string, daysAgo int, categories ...*models.Category) *models.Article {
	t.Helper()
	a := models.NewArticle()
	a.Title = title
	a.PublishedDate = datatypes.Date(time.Now().AddDate(0, 0, -daysAgo))
	for _, c := range categories {
		a.Categories = append(a.Categories, *c)
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func titles(articles []models.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Title)
	}
	return out
}

func TestArticleRepository_Related(t *testing.T) {
	db := testutil.NewDB(t)
	textiles := testutil.CreateCategory(t, db, "Textiles")
	policy := testutil.CreateCategory(t, db, "Policy")

	main := createArticle(t, db, "Main", 0, textiles)
	createArticle(t, db, "Shares textiles", 1, textiles, policy)
	createArticle(t, db, "Policy only", 2, policy)
	unpublished := createArticle(t, db, "Draft", 3, textiles)
	require.NoError(t, db.Model(unpublished).Update("is_published", false).Error)

	repo := NewArticleRepository()
	loaded, err := repo.FindPublishedBySlug(main.Slug)
	require.NoError(t, err)

	related, err := repo.Related(loaded, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shares textiles"}, titles(related))
}

func TestArticleRepository_FindPublishedBySlug_Unpublished(t *testing.T) {
	db := testutil.NewDB(t)
	draft := createArticle(t, db, "Draft", 0)
	require.NoError(t, db.Model(draft).Update("is_published", false).Error)

	_, err := NewArticleRepository().FindPublishedBySlug(draft.Slug)
	assert.True(t, IsNotFound(err))
}

func TestMagazineRepository_Published(t *testing.T) {
	db := testutil.NewDB(t)
	food := testutil.CreateCategory(t, db, "Food Loops")

	spring := models.NewMagazineIssue()
	spring.Title = "Circular Spring 2025"
	spring.Categories = []models.Category{*food}
	require.NoError(t, db.Create(spring).Error)

	winter := models.NewMagazineIssue()
	winter.Title = "Circular Winter 2024"
	require.NoError(t, db.Create(winter).Error)

	repo := NewMagazineRepository()

	issues, err := repo.Published("spring", "")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, spring.ID, issues[0].ID)

	issues, err = repo.Published("", food.Slug)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, spring.ID, issues[0].ID)

	issues, err = repo.Published("", "")
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestPopularArticleRepository_CreateIfAbsent(t *testing.T) {
	testutil.NewDB(t)
	repo := NewPopularArticleRepository()

	item := models.NewPopularArticle()
	item.Title = "EU adopts new rules"
	item.URL = "https://example.org/eu"

	created, err := repo.CreateIfAbsent(item)
	require.NoError(t, err)
	assert.True(t, created)

	again := models.NewPopularArticle()
	again.Title = "EU adopts new rules (updated)"
	again.URL = "https://example.org/eu"
	created, err = repo.CreateIfAbsent(again)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestFoundersRepository_GetOrCreate(t *testing.T) {
	testutil.NewDB(t)
	repo := NewFoundersRepository()

	entry, created, err := repo.GetOrCreate("founder@example.org")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := repo.GetOrCreate("founder@example.org")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, entry.ID, again.ID)
}
