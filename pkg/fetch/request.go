// Package fetch builds outgoing GET requests for feeds and article pages.
// Some publishers reject requests that don't look like a browser or a feed reader.
package fetch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
)

// Kind of the fetched resource, selects the accepted content types
type Kind int

// resource kinds
const (
	Feed Kind = iota
	Page
)

var accept = map[Kind]string{
	Feed: "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5",
	Page: "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
}

var languages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
	"de-DE,de;q=0.9,en;q=0.8",
}

// NewRequest makes a GET request for url with the user agent and headers of the given kind
func NewRequest(ctx context.Context, kind Kind, url, userAgent string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept[kind])
	req.Header.Set("Accept-Language", languages[rand.IntN(len(languages))]) //nolint:gosec // header variation only
	req.Header.Set("Cache-Control", "no-cache")
	if rand.Float32() < 0.3 { //nolint:gosec // header variation only
		req.Header.Set("DNT", "1")
	}

	if kind == Page {
		// navigation headers, feeds are fetched as plain resources
		req.Header.Set("Upgrade-Insecure-Requests", "1")
		req.Header.Set("Sec-Fetch-Dest", "document")
		req.Header.Set("Sec-Fetch-Mode", "navigate")
		req.Header.Set("Sec-Fetch-Site", "none")
	}
	return req, nil
}
