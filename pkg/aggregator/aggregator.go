// Package aggregator gathers items from all feeds of a dossier into one bounded, newest-first list.
package aggregator

import (
	"context"
	"errors"
	"sort"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/dossier/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher Extractor

// ErrNoItems is returned when none of the feeds produced any item
var ErrNoItems = errors.New("no items")

// Fetcher reads a single feed
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.Item, error)
}

// Extractor pulls readable text from an article page
type Extractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

// Aggregator fetches dossier feeds concurrently and merges the results
type Aggregator struct {
	fetcher       Fetcher
	extractor     Extractor // optional
	maxConcurrent int
}

// New makes an aggregator. extractor may be nil, in which case items are used as published by the feed.
func New(fetcher Fetcher, extractor Extractor, maxConcurrent int) *Aggregator {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Aggregator{fetcher: fetcher, extractor: extractor, maxConcurrent: maxConcurrent}
}

// Aggregate fetches all feeds of the dossier, sorts items by publication time (newest first) and keeps
// at most MaxItems. Failed feeds are logged and skipped, their count is returned as failures.
func (a *Aggregator) Aggregate(ctx context.Context, d domain.Dossier) (items []domain.Item, failures int, err error) {
	perFeed := make([][]domain.Item, len(d.Feeds))
	failed := make([]bool, len(d.Feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)
	for i, url := range d.Feeds {
		g.Go(func() error {
			res, ferr := a.fetcher.Fetch(gctx, url)
			if ferr != nil {
				lgr.Printf("[WARN] dossier %d, failed to fetch feed %s: %v", d.ID, url, ferr)
				failed[i] = true
				return nil // one broken feed must not cancel the others
			}
			perFeed[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for i := range d.Feeds {
		if failed[i] {
			failures++
			continue
		}
		items = append(items, perFeed[i]...)
	}

	if len(items) == 0 {
		if ctx.Err() != nil {
			return nil, failures, ctx.Err()
		}
		return nil, failures, ErrNoItems
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})

	if d.MaxItems > 0 && len(items) > d.MaxItems {
		items = items[:d.MaxItems]
	}

	if a.extractor != nil {
		a.enrich(ctx, items)
	}

	lgr.Printf("[DEBUG] dossier %d aggregated %d items from %d feeds, %d failed",
		d.ID, len(items), len(d.Feeds), failures)
	return items, failures, nil
}

// enrich fills the body of items carrying neither description nor body with the extracted page text
func (a *Aggregator) enrich(ctx context.Context, items []domain.Item) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)
	for i := range items {
		if items[i].Text() != "" || items[i].Link == "" {
			continue
		}
		g.Go(func() error {
			text, err := a.extractor.Extract(gctx, items[i].Link)
			if err != nil {
				lgr.Printf("[DEBUG] can't extract %s: %v", items[i].Link, err)
				return nil
			}
			items[i].Body = text
			return nil
		})
	}
	_ = g.Wait()
}
