package fetch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	tbl := []struct {
		name       string
		kind       Kind
		acceptHas  string
		navigation bool
	}{
		{name: "feed", kind: Feed, acceptHas: "application/rss+xml"},
		{name: "page", kind: Page, acceptHas: "text/html", navigation: true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(context.Background(), tt.kind, "https://example.com/x", "test-agent")
			require.NoError(t, err)
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, "test-agent", req.Header.Get("User-Agent"))
			assert.Contains(t, req.Header.Get("Accept"), tt.acceptHas)
			assert.Contains(t, languages, req.Header.Get("Accept-Language"))
			assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
			if tt.navigation {
				assert.Equal(t, "navigate", req.Header.Get("Sec-Fetch-Mode"))
				assert.Equal(t, "1", req.Header.Get("Upgrade-Insecure-Requests"))
			} else {
				assert.Empty(t, req.Header.Get("Sec-Fetch-Mode"))
			}
		})
	}

	t.Run("bad url", func(t *testing.T) {
		_, err := NewRequest(context.Background(), Feed, "://bad", "ua")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create request")
	})
}
