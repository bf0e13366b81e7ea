package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/dossier/pkg/domain"
	"github.com/umputun/dossier/pkg/fetch"
)

// Parser fetches and parses RSS/Atom/JSON feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	if userAgent == "" {
		userAgent = "Dossier/1.0"
	}
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves the feed at url and converts its entries to items
func (p *Parser) Fetch(ctx context.Context, url string) ([]domain.Item, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	items := make([]domain.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}
		item := domain.Item{
			Title:       strings.TrimSpace(entry.Title),
			Link:        strings.TrimSpace(entry.Link),
			Description: strings.TrimSpace(entry.Description),
			Body:        strings.TrimSpace(entry.Content),
			FeedURL:     url,
		}

		// some feeds only carry a permalink guid
		if item.Link == "" && strings.HasPrefix(entry.GUID, "http") {
			item.Link = entry.GUID
		}

		switch {
		case entry.Author != nil && entry.Author.Name != "":
			item.Author = entry.Author.Name
		case len(entry.Authors) > 0 && entry.Authors[0] != nil:
			item.Author = entry.Authors[0].Name
		}

		switch {
		case entry.PublishedParsed != nil:
			item.Published = *entry.PublishedParsed
		case entry.UpdatedParsed != nil:
			item.Published = *entry.UpdatedParsed
		}

		items = append(items, item)
	}

	return items, nil
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := fetch.NewRequest(ctx, fetch.Feed, url, p.userAgent)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
