package domain

import "time"

// Item is a single piece of content fetched from a feed. Items are transient,
// created on every aggregation pass and discarded after the pipeline run.
type Item struct {
	Title       string
	Link        string
	Description string
	Body        string
	Author      string
	Published   time.Time
	FeedURL     string
}

// Text returns the description, or the body if description is empty
func (i Item) Text() string {
	if i.Description != "" {
		return i.Description
	}
	return i.Body
}

// Delivery is a persisted record of a generated and sent dossier.
// Records are append-only and drive duplicate suppression.
type Delivery struct {
	ID          int64
	DossierID   int64
	DeliveredAt time.Time
	Content     string
	ItemCount   int
	Success     bool
	PeriodKey   string
}
