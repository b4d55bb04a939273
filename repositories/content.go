package repositories

import (
	"strings"

	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct{}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// FindAll retrieves every category ordered by name
func (r *CategoryRepository) FindAll() ([]models.Category, error) {
	categories := []models.Category{}
	result := database.DB.Order("name").Order("id").Find(&categories)
	return categories, result.Error
}

// ArticleRepository handles database operations for articles
type ArticleRepository struct{}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository() *ArticleRepository {
	return &ArticleRepository{}
}

// published is the base query of every public article list
func (r *ArticleRepository) published() *gorm.DB {
	return database.DB.Model(&models.Article{}).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("is_published = ?", true).
		Order("published_date DESC").Order("created_at DESC").Order("id DESC")
}

// Published retrieves published articles, newest first. limit <= 0 means all.
func (r *ArticleRepository) Published(limit int) ([]models.Article, error) {
	articles := []models.Article{}
	query := r.published()
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&articles)
	return articles, result.Error
}

// PublishedFeatured retrieves up to limit featured published articles
func (r *ArticleRepository) PublishedFeatured(limit int) ([]models.Article, error) {
	articles := []models.Article{}
	result := r.published().Where("is_featured = ?", true).Limit(limit).Find(&articles)
	return articles, result.Error
}

// CountPublished returns the number of published articles
func (r *ArticleRepository) CountPublished() (int64, error) {
	var count int64
	err := database.DB.Model(&models.Article{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}

// PublishedPage retrieves one window of the published articles
func (r *ArticleRepository) PublishedPage(offset, limit int) ([]models.Article, error) {
	articles := []models.Article{}
	result := r.published().Offset(offset).Limit(limit).Find(&articles)
	return articles, result.Error
}

// FindPublishedBySlug retrieves a published article by slug
func (r *ArticleRepository) FindPublishedBySlug(slug string) (models.Article, error) {
	var article models.Article
	result := database.DB.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Preload("Author").
		Where("slug = ? AND is_published = ?", slug, true).
		First(&article)
	return article, result.Error
}

// Related retrieves published articles sharing a category with article
func (r *ArticleRepository) Related(article models.Article, limit int) ([]models.Article, error) {
	articles := []models.Article{}
	if len(article.Categories) == 0 {
		return articles, nil
	}

	ids := make([]uint, 0, len(article.Categories))
	for _, c := range article.Categories {
		ids = append(ids, c.ID)
	}
	shared := database.DB.Table("article_categories").Select("article_id").Where("category_id IN ?", ids)

	result := r.published().
		Where("id <> ?", article.ID).
		Where("id IN (?)", shared).
		Limit(limit).
		Find(&articles)
	return articles, result.Error
}

// ResourceRepository handles database operations for knowledge-center resources
type ResourceRepository struct{}

// NewResourceRepository creates a new resource repository instance
func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{}
}

// Published retrieves published resources with their categories, newest first
func (r *ResourceRepository) Published() ([]models.Resource, error) {
	resources := []models.Resource{}
	result := database.DB.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("published = ?", true).
		Order("created_at DESC").Order("id DESC").
		Find(&resources)
	return resources, result.Error
}

// FeaturedPublished retrieves up to limit featured published resources
func (r *ResourceRepository) FeaturedPublished(limit int) ([]models.Resource, error) {
	resources := []models.Resource{}
	result := database.DB.
		Where("published = ? AND is_featured = ?", true, true).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&resources)
	return resources, result.Error
}

// MagazineRepository handles database operations for magazine issues
type MagazineRepository struct{}

// NewMagazineRepository creates a new magazine repository instance
func NewMagazineRepository() *MagazineRepository {
	return &MagazineRepository{}
}

// Published retrieves published issues whose title contains query and that
// belong to the category with categorySlug. Empty values do not filter.
func (r *MagazineRepository) Published(query, categorySlug string) ([]models.MagazineIssue, error) {
	db := database.DB.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("is_published = ?", true)

	if q := strings.TrimSpace(query); q != "" {
		db = db.Where(LikeClause("title"), ContainsPattern(q))
	}
	if slug := strings.TrimSpace(categorySlug); slug != "" {
		inCategory := database.DB.Table("magazine_issue_categories").
			Select("magazine_issue_categories.magazine_issue_id").
			Joins("JOIN categories ON categories.id = magazine_issue_categories.category_id").
			Where("categories.slug = ?", slug)
		db = db.Where("id IN (?)", inCategory)
	}

	issues := []models.MagazineIssue{}
	result := db.Order("published_date DESC").Order("created_at DESC").Order("id DESC").Find(&issues)
	return issues, result.Error
}

// PopularArticleRepository handles database operations for external popular articles
type PopularArticleRepository struct{}

// NewPopularArticleRepository creates a new popular article repository instance
func NewPopularArticleRepository() *PopularArticleRepository {
	return &PopularArticleRepository{}
}

// Latest retrieves the n most recent popular articles
func (r *PopularArticleRepository) Latest(n int) ([]models.PopularArticle, error) {
	items := []models.PopularArticle{}
	result := database.DB.Order("date DESC").Order("id DESC").Limit(n).Find(&items)
	return items, result.Error
}

// CreateIfAbsent inserts the article unless one with the same URL exists.
// It reports whether a row was inserted.
func (r *PopularArticleRepository) CreateIfAbsent(item *models.PopularArticle) (bool, error) {
	var count int64
	if err := database.DB.Model(&models.PopularArticle{}).Where("url = ?", item.URL).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := database.DB.Create(item).Error; err != nil {
		if IsDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
