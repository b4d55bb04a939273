package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/callsoso/callsoso/lib/feeds"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	items []feeds.Item
	err   error
}

func (f stubFetcher) Fetch(context.Context, string) ([]feeds.Item, error) {
	return f.items, f.err
}

func TestFeedService_Import(t *testing.T) {
	db := testutil.NewDB(t)
	published := time.Date(2025, 9, 23, 0, 0, 0, 0, time.UTC)
	fetcher := stubFetcher{items: []feeds.Item{
		{Title: "WRAP shines a spotlight on toothpaste tubes", URL: "https://example.org/wrap", Published: published},
		{Title: "EU adopts new rules", URL: "https://example.org/eu", ImageURL: "https://example.org/eu.jpg", Published: published},
		{Title: "Third", URL: "https://example.org/third", Published: published},
	}}
	svc := NewFeedService(fetcher)

	result, err := svc.Import(context.Background(), "https://example.org/feed", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Created)

	result, err = svc.Import(context.Background(), "https://example.org/feed", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 2, result.Existing)

	var eu models.PopularArticle
	require.NoError(t, db.Where("url = ?", "https://example.org/eu").First(&eu).Error)
	assert.Equal(t, "https://example.org/eu.jpg", eu.DisplayImage())
}

func TestFeedService_Import_FetchError(t *testing.T) {
	testutil.NewDB(t)
	svc := NewFeedService(stubFetcher{err: errors.New("timeout")})

	_, err := svc.Import(context.Background(), "https://example.org/feed", 0)
	assert.Error(t, err)
}
