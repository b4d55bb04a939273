package dto

import (
	"strconv"
	"time"

	"github.com/callsoso/callsoso/models"
)

// ArticleView is an article with its resolved image and category names.
type ArticleView struct {
	models.Article
	DisplayImage  string   `json:"displayImage"`
	CategoryNames []string `json:"categoryNames"`
}

func NewArticleView(a models.Article) ArticleView {
	return ArticleView{Article: a, DisplayImage: a.DisplayImage(), CategoryNames: a.CategoryNames()}
}

func NewArticleViews(articles []models.Article) []ArticleView {
	views := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, NewArticleView(a))
	}
	return views
}

// MagazineIssueView is an issue with its resolved cover image.
type MagazineIssueView struct {
	models.MagazineIssue
	DisplayImage string `json:"displayImage"`
}

func NewMagazineIssueViews(issues []models.MagazineIssue) []MagazineIssueView {
	views := make([]MagazineIssueView, 0, len(issues))
	for _, m := range issues {
		views = append(views, MagazineIssueView{MagazineIssue: m, DisplayImage: m.DisplayImage()})
	}
	return views
}

// PopularArticleView is an external article with its resolved image.
type PopularArticleView struct {
	models.PopularArticle
	DisplayImage string `json:"displayImage"`
}

func NewPopularArticleViews(items []models.PopularArticle) []PopularArticleView {
	views := make([]PopularArticleView, 0, len(items))
	for _, p := range items {
		views = append(views, PopularArticleView{PopularArticle: p, DisplayImage: p.DisplayImage()})
	}
	return views
}

// ResourceView is a resource as listed on the home page.
type ResourceView struct {
	models.Resource
	DisplayImage string `json:"displayImage"`
}

func NewResourceViews(resources []models.Resource) []ResourceView {
	views := make([]ResourceView, 0, len(resources))
	for _, r := range resources {
		views = append(views, ResourceView{Resource: r, DisplayImage: r.DisplayImage()})
	}
	return views
}

// KnowledgeItem is a resource card on the knowledge center page. Category
// ids are strings so the page can match them against filter values.
type KnowledgeItem struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	PublishedDate time.Time `json:"publishedDate"`
	Description   string    `json:"description"`
	ResourceType  string    `json:"resourceType"`
	Link          string    `json:"link"`
	DisplayImage  string    `json:"displayImage"`
	Categories    []string  `json:"categories"`
	CategoryIDs   []string  `json:"categoryIds"`
}

func NewKnowledgeItem(r models.Resource) KnowledgeItem {
	ids := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, strconv.FormatUint(uint64(c.ID), 10))
	}
	return KnowledgeItem{
		ID:            r.ID,
		Title:         r.Title,
		PublishedDate: r.CreatedAt,
		Description:   r.Description,
		ResourceType:  string(r.ResourceType),
		Link:          r.Link,
		DisplayImage:  r.DisplayImage(),
		Categories:    r.CategoryNames(),
		CategoryIDs:   ids,
	}
}

// PopularResource is a sidebar entry on the knowledge center page.
type PopularResource struct {
	Title         string    `json:"title"`
	PublishedDate time.Time `json:"publishedDate"`
	Link          string    `json:"link"`
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"numPages"`
	Count       int64 `json:"count"`
	PerPage     int   `json:"perPage"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
	Items       []T   `json:"items"`
}

// IsPaginated reports whether there is more than one page.
func (p Page[T]) IsPaginated() bool {
	return p.HasNext || p.HasPrevious
}

// HomePage is the landing page context.
type HomePage struct {
	HeroMicrocopy     []string       `json:"heroMicrocopy"`
	GardensMicrocopy  []string       `json:"gardensMicrocopy"`
	LatestArticles    []ArticleView  `json:"latestArticles"`
	FeaturedResources []ResourceView `json:"featuredResources"`
}

// NewsPage is the news listing context.
type NewsPage struct {
	Articles         []ArticleView     `json:"articles"`
	FeaturedArticles []ArticleView     `json:"featuredArticles"`
	PopularArticles  []ArticleView     `json:"popularArticles"`
	Page             Page[ArticleView] `json:"page"`
	IsPaginated      bool              `json:"isPaginated"`
	AllCategories    []models.Category `json:"allCategories"`
}

// ArticleDetail is a single article with related reading.
type ArticleDetail struct {
	Article         ArticleView   `json:"article"`
	RelatedArticles []ArticleView `json:"relatedArticles"`
}

// CategoryGroup is one category section of the insights page.
type CategoryGroup struct {
	Category string        `json:"category"`
	Articles []ArticleView `json:"articles"`
}

// InsightsPage groups articles by category.
type InsightsPage struct {
	Categories     []CategoryGroup `json:"categories"`
	CategoriesList []string        `json:"categoriesList"`
	Popular        []ArticleView   `json:"popular"`
}

// KnowledgePage is the knowledge center context.
type KnowledgePage struct {
	Categories []models.Category `json:"categories"`
	Highlights []KnowledgeItem   `json:"highlights"`
	Resources  []KnowledgeItem   `json:"resources"`
	Popular    []PopularResource `json:"popular"`
}

// MagazineFilter holds the search parameters of the magazine page.
type MagazineFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
}

// MagazinePage is the magazine context.
type MagazinePage struct {
	Issues           []MagazineIssueView  `json:"issues"`
	FeaturedIssues   []MagazineIssueView  `json:"featuredIssues"`
	RegularIssues    []MagazineIssueView  `json:"regularIssues"`
	PopularArticles  []PopularArticleView `json:"popularArticles"`
	SearchQuery      string               `json:"searchQuery"`
	AllCategories    []models.Category    `json:"allCategories"`
	SelectedCategory string               `json:"selectedCategory"`
}
