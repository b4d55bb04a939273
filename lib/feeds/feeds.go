// Package feeds reads RSS and Atom feeds of external articles.
package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is one external article taken from a feed.
type Item struct {
	Title     string
	URL       string
	ImageURL  string
	Published time.Time
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher returns a fetcher that gives up after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "callsoso-feed-importer/1.0"
	return &Fetcher{parser: parser}
}

// Fetch downloads url and returns its items.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Item, error) {
	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	return itemsOf(feed), nil
}

// Parse reads a feed document from r.
func Parse(r io.Reader) ([]Item, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return itemsOf(feed), nil
}

func itemsOf(feed *gofeed.Feed) []Item {
	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		title := strings.TrimSpace(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}

		item := Item{Title: title, URL: link}
		switch {
		case it.PublishedParsed != nil:
			item.Published = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			item.Published = *it.UpdatedParsed
		default:
			item.Published = time.Now()
		}
		if it.Image != nil {
			item.ImageURL = it.Image.URL
		}
		if item.ImageURL == "" {
			for _, enc := range it.Enclosures {
				if strings.HasPrefix(enc.Type, "image/") {
					item.ImageURL = enc.URL
					break
				}
			}
		}
		items = append(items, item)
	}
	return items
}
