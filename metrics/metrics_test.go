package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(NotificationFailures.WithLabelValues("match"))
	NotificationFailures.WithLabelValues("match").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(NotificationFailures.WithLabelValues("match")))
}

func TestHandler(t *testing.T) {
	MatchesSuggested.Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "callsoso_matches_suggested_total"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
