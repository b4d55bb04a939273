package services

import (
	"sort"
	"strings"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/repositories"
)

const (
	newsPageSize      = 5
	uncategorizedName = "Uncategorized"
)

var heroMicrocopy = []string{
	"Every material has a second life.",
	"Surplus isn’t waste, it’s unrealised potential.",
	"Culture forms from what we choose to value.",
	"Circularity begins with attention.",
	"Creativity is a form of infrastructure.",
}

var gardensMicrocopy = []string{
	"Ideas grow wherever they’re planted.",
	"Every material carries a history.",
	"Circularity begins with attention.",
}

// ContentService builds the pages of the published content area
type ContentService struct {
	articleRepo  *repositories.ArticleRepository
	categoryRepo *repositories.CategoryRepository
	resourceRepo *repositories.ResourceRepository
	magazineRepo *repositories.MagazineRepository
	popularRepo  *repositories.PopularArticleRepository
}

// NewContentService creates a new content service instance
func NewContentService() *ContentService {
	return &ContentService{
		articleRepo:  repositories.NewArticleRepository(),
		categoryRepo: repositories.NewCategoryRepository(),
		resourceRepo: repositories.NewResourceRepository(),
		magazineRepo: repositories.NewMagazineRepository(),
		popularRepo:  repositories.NewPopularArticleRepository(),
	}
}

// Home returns the landing page: latest news, featured resources, microcopy
func (s *ContentService) Home() (*dto.HomePage, error) {
	latest, err := s.articleRepo.Published(3)
	if err != nil {
		return nil, err
	}
	featured, err := s.resourceRepo.FeaturedPublished(3)
	if err != nil {
		return nil, err
	}
	return &dto.HomePage{
		HeroMicrocopy:     heroMicrocopy,
		GardensMicrocopy:  gardensMicrocopy,
		LatestArticles:    dto.NewArticleViews(latest),
		FeaturedResources: dto.NewResourceViews(featured),
	}, nil
}

// News returns one page of published articles with the sidebar lists
func (s *ContentService) News(rawPage string) (*dto.NewsPage, error) {
	count, err := s.articleRepo.CountPublished()
	if err != nil {
		return nil, err
	}
	paginator := Paginator{Count: count, PerPage: newsPageSize}
	number := paginator.Resolve(rawPage)

	items, err := s.articleRepo.PublishedPage(paginator.Offset(number), newsPageSize)
	if err != nil {
		return nil, err
	}
	featured, err := s.articleRepo.PublishedFeatured(3)
	if err != nil {
		return nil, err
	}
	popular, err := s.articleRepo.Published(4)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	views := dto.NewArticleViews(items)
	page := dto.Page[dto.ArticleView]{
		Number:      number,
		NumPages:    paginator.NumPages(),
		Count:       count,
		PerPage:     newsPageSize,
		HasNext:     number < paginator.NumPages(),
		HasPrevious: number > 1,
		Items:       views,
	}
	return &dto.NewsPage{
		Articles:         views,
		FeaturedArticles: dto.NewArticleViews(featured),
		PopularArticles:  dto.NewArticleViews(popular),
		Page:             page,
		IsPaginated:      page.IsPaginated(),
		AllCategories:    categories,
	}, nil
}

// ArticleDetail returns a published article and up to four related ones
func (s *ContentService) ArticleDetail(slug string) (*dto.ArticleDetail, error) {
	article, err := s.articleRepo.FindPublishedBySlug(slug)
	if err != nil {
		return nil, notFound(err)
	}
	related, err := s.articleRepo.Related(article, 4)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleDetail{
		Article:         dto.NewArticleView(article),
		RelatedArticles: dto.NewArticleViews(related),
	}, nil
}

// Insights groups the published articles by category
func (s *ContentService) Insights() (*dto.InsightsPage, error) {
	articles, err := s.articleRepo.Published(0)
	if err != nil {
		return nil, err
	}

	groups := GroupByCategory(articles)
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Category)
	}

	popular := articles
	if len(popular) > 5 {
		popular = popular[:5]
	}
	return &dto.InsightsPage{
		Categories:     groups,
		CategoriesList: names,
		Popular:        dto.NewArticleViews(popular),
	}, nil
}

// GroupByCategory puts every article in the group of each of its
// categories, or in Uncategorized when it has none. Articles keep their
// order inside a group; groups are sorted by name ignoring case.
func GroupByCategory(articles []models.Article) []dto.CategoryGroup {
	index := make(map[string]int)
	groups := []dto.CategoryGroup{}

	add := func(name string, a models.Article) {
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, dto.CategoryGroup{Category: name})
		}
		groups[i].Articles = append(groups[i].Articles, dto.NewArticleView(a))
	}

	for _, a := range articles {
		if len(a.Categories) == 0 {
			add(uncategorizedName, a)
			continue
		}
		for _, c := range a.Categories {
			add(c.Name, a)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].Category) < strings.ToLower(groups[j].Category)
	})
	return groups
}

// Knowledge returns the knowledge center split into highlights and resources
func (s *ContentService) Knowledge() (*dto.KnowledgePage, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	resources, err := s.resourceRepo.Published()
	if err != nil {
		return nil, err
	}

	page := &dto.KnowledgePage{
		Categories: categories,
		Highlights: []dto.KnowledgeItem{},
		Resources:  []dto.KnowledgeItem{},
		Popular:    []dto.PopularResource{},
	}
	for i, r := range resources {
		item := dto.NewKnowledgeItem(r)
		if r.IsFeatured {
			page.Highlights = append(page.Highlights, item)
		} else {
			page.Resources = append(page.Resources, item)
		}
		if i < 5 {
			page.Popular = append(page.Popular, dto.PopularResource{
				Title:         r.Title,
				PublishedDate: r.CreatedAt,
				Link:          r.Link,
			})
		}
	}
	return page, nil
}

// Magazine returns the published issues matching filter
func (s *ContentService) Magazine(filter dto.MagazineFilter) (*dto.MagazinePage, error) {
	query := strings.TrimSpace(filter.Query)
	category := strings.TrimSpace(filter.Category)

	issues, err := s.magazineRepo.Published(query, category)
	if err != nil {
		return nil, err
	}

	featured := []models.MagazineIssue{}
	regular := []models.MagazineIssue{}
	for _, issue := range issues {
		if issue.IsFeatured && len(featured) < 4 {
			featured = append(featured, issue)
		} else {
			regular = append(regular, issue)
		}
	}

	popular, err := s.popularRepo.Latest(5)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	return &dto.MagazinePage{
		Issues:           dto.NewMagazineIssueViews(issues),
		FeaturedIssues:   dto.NewMagazineIssueViews(featured),
		RegularIssues:    dto.NewMagazineIssueViews(regular),
		PopularArticles:  dto.NewPopularArticleViews(popular),
		SearchQuery:      query,
		AllCategories:    categories,
		SelectedCategory: category,
	}, nil
}
