// Package trigger decides whether a dossier is due for generation at a given moment.
// The decision is local to the dossier's timezone and suppresses a second delivery
// within the same daily, weekly or monthly period.
package trigger

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dossier/pkg/domain"
)

//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . History

// History provides the most recent successful delivery of a dossier, nil if none
type History interface {
	GetLastDelivery(ctx context.Context, dossierID int64) (*domain.Delivery, error)
}

// Evaluator is a pure trigger decision over the delivery history
type Evaluator struct {
	history     History
	defaultZone *time.Location
}

// NewEvaluator makes an evaluator. defaultZone is used for dossiers with unknown timezone, UTC if nil.
func NewEvaluator(history History, defaultZone *time.Location) *Evaluator {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &Evaluator{history: history, defaultZone: defaultZone}
}

// IsDue reports whether the dossier should be generated at now.
// History read failures are treated as due, a duplicate is preferred over a missed dossier.
func (e *Evaluator) IsDue(ctx context.Context, d domain.Dossier, now time.Time) bool {
	loc := ResolveLocation(d.Timezone, e.defaultZone)
	local := now.In(loc)

	hour, minute, err := domain.ParseDeliveryTime(d.DeliveryTime)
	if err != nil {
		lgr.Printf("[WARN] dossier %d (%s) skipped: %v", d.ID, d.Name, err)
		return false
	}

	if local.Hour() != hour || local.Minute() != minute {
		return false
	}

	switch d.Frequency {
	case domain.FrequencyDaily:
	case domain.FrequencyWeekly:
		if local.Weekday() != time.Monday {
			return false
		}
	case domain.FrequencyMonthly:
		if local.Day() != 1 {
			return false
		}
	default:
		lgr.Printf("[WARN] dossier %d (%s) has unsupported frequency %q", d.ID, d.Name, d.Frequency)
		return false
	}

	last, err := e.history.GetLastDelivery(ctx, d.ID)
	if err != nil {
		lgr.Printf("[WARN] can't read delivery history of dossier %d, assuming due: %v", d.ID, err)
		return true
	}
	if last == nil {
		return true
	}

	return domain.PeriodKey(d.Frequency, last.DeliveredAt.In(loc)) != domain.PeriodKey(d.Frequency, local)
}

// ResolveLocation loads the named IANA zone, falling back to fallback (or UTC) when the name is
// empty or unknown
func ResolveLocation(name string, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		lgr.Printf("[WARN] unknown timezone %q, using %s: %v", name, fallback, err)
		return fallback
	}
	return loc
}
