package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Circular news</title>
  <link>https://example.org</link>
  <description>News</description>
  <item>
    <title>EU adopts new rules to reduce textile and food waste</title>
    <link>https://example.org/eu-rules</link>
    <pubDate>Wed, 10 Sep 2025 09:00:00 GMT</pubDate>
    <enclosure url="https://example.org/eu.jpg" type="image/jpeg" length="1000"/>
  </item>
  <item>
    <title>   </title>
    <link>https://example.org/untitled</link>
  </item>
  <item>
    <title>WRAP shines a spotlight on toothpaste tubes</title>
    <link>https://example.org/wrap</link>
    <pubDate>Tue, 23 Sep 2025 09:00:00 GMT</pubDate>
  </item>
</channel>
</rss>`

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(sampleRSS))
	require.NoError(t, err)
	require.Len(t, items, 2, "items without a title are skipped")

	assert.Equal(t, "EU adopts new rules to reduce textile and food waste", items[0].Title)
	assert.Equal(t, "https://example.org/eu-rules", items[0].URL)
	assert.Equal(t, "https://example.org/eu.jpg", items[0].ImageURL)
	assert.Equal(t, time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC), items[0].Published.UTC())

	assert.Equal(t, "https://example.org/wrap", items[1].URL)
	assert.Empty(t, items[1].ImageURL)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(strings.NewReader("not a feed"))
	assert.Error(t, err)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	items, err := NewFetcher(5*time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
