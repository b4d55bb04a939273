package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/lib/feeds"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/repositories"
	"gorm.io/datatypes"
)

const (
	defaultFeedLimit = 20
	maxArticleURL    = 500

	// DefaultFeedTimeout bounds a single feed download
	DefaultFeedTimeout = 30 * time.Second
)

// FeedFetcher downloads the items of a feed
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]feeds.Item, error)
}

// FeedService imports external articles into the popular articles sidebar
type FeedService struct {
	popularRepo *repositories.PopularArticleRepository
	fetcher     FeedFetcher
}

// NewFeedService creates a new feed service instance
func NewFeedService(fetcher FeedFetcher) *FeedService {
	return &FeedService{
		popularRepo: repositories.NewPopularArticleRepository(),
		fetcher:     fetcher,
	}
}

// Import fetches url and stores up to limit items not already known by URL
func (s *FeedService) Import(ctx context.Context, url string, limit int) (*dto.FeedImportResult, error) {
	items, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return s.store(items)
}

func (s *FeedService) store(items []feeds.Item) (*dto.FeedImportResult, error) {
	result := &dto.FeedImportResult{Fetched: len(items)}
	for _, item := range items {
		if len(item.URL) > maxArticleURL {
			slog.Warn("Skipping feed item with an oversized URL", slog.String("title", item.Title))
			continue
		}
		article := models.PopularArticle{
			Title: truncate(item.Title, 250),
			URL:   item.URL,
			Date:  datatypes.Date(item.Published),
		}
		if item.ImageURL != "" {
			imageURL := item.ImageURL
			article.ImageURL = &imageURL
		}

		created, err := s.popularRepo.CreateIfAbsent(&article)
		if err != nil {
			return result, err
		}
		if created {
			result.Created++
		} else {
			result.Existing++
		}
	}

	slog.Info("Imported popular articles",
		slog.Int("fetched", result.Fetched),
		slog.Int("created", result.Created),
		slog.Int("existing", result.Existing))
	return result, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var _ FeedFetcher = (*feeds.Fetcher)(nil)
