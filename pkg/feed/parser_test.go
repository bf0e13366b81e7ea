package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Fetch(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<content:encoded><![CDATA[<p>Full content of article 1</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>http://example.com/article1</guid>
		<author>test@example.com (Test Author)</author>
	</item>
	<item>
		<title>Test Article 2</title>
		<guid isPermaLink="true">http://example.com/article2</guid>
		<description>Article 2 description</description>
		<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
	</item>
</channel>
</rss>`

	var userAgent, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "TestAgent/1.0")
	items, err := parser.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "TestAgent/1.0", userAgent)
	assert.Contains(t, accept, "application/rss+xml")

	require.Len(t, items, 2)

	item1 := items[0]
	assert.Equal(t, "Test Article 1", item1.Title)
	assert.Equal(t, "http://example.com/article1", item1.Link)
	assert.Equal(t, "Article 1 description", item1.Description)
	assert.Equal(t, "<p>Full content of article 1</p>", item1.Body)
	assert.Equal(t, "Test Author", item1.Author)
	assert.Equal(t, server.URL, item1.FeedURL)
	assert.Equal(t, time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC), item1.Published.UTC())

	// link taken from permalink guid
	item2 := items[1]
	assert.Equal(t, "Test Article 2", item2.Title)
	assert.Equal(t, "http://example.com/article2", item2.Link)
	assert.Empty(t, item2.Body)
	assert.Empty(t, item2.Author)
}

func TestParser_Fetch_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
		<author>
			<name>John Doe</name>
		</author>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "")
	items, err := parser.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Atom Entry 1", item.Title)
	assert.Equal(t, "http://example.com/entry1", item.Link)
	assert.Equal(t, "Entry 1 summary", item.Description)
	assert.Equal(t, "John Doe", item.Author)
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), item.Published.UTC())
}

func TestParser_Fetch_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "")
		_, err := parser.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml"))
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "")
		_, err := parser.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("context canceled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("too late"))
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		parser := NewParser(5*time.Second, "")
		_, err := parser.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("invalid URL", func(t *testing.T) {
		parser := NewParser(5*time.Second, "")
		_, err := parser.Fetch(context.Background(), "not-a-url")
		require.Error(t, err)
	})
}
