package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dossier/pkg/domain"
	"github.com/umputun/dossier/pkg/repository"
	"github.com/umputun/dossier/pkg/trigger"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Aggregator Pipeline Sender

// Aggregator collects recent items for a dossier
type Aggregator interface {
	Aggregate(ctx context.Context, d domain.Dossier) ([]domain.Item, int, error)
}

// Pipeline turns items into the dossier text
type Pipeline interface {
	Run(ctx context.Context, d domain.Dossier, items []domain.Item) (string, error)
}

// Sender delivers the dossier text to its recipient
type Sender interface {
	Send(ctx context.Context, d domain.Dossier, text string, items []domain.Item) error
}

// recordTimeout limits the delivery record write, it runs even if the unit deadline is close
const recordTimeout = 30 * time.Second

// Runner performs a single generation unit: aggregate, synthesize, deliver, record
type Runner struct {
	aggregator  Aggregator
	pipeline    Pipeline
	sender      Sender
	store       DossierStore
	defaultZone *time.Location
	now         func() time.Time
}

// NewRunner makes a runner. defaultZone is used for dossiers without a valid timezone.
func NewRunner(agg Aggregator, pipe Pipeline, sender Sender, store DossierStore, defaultZone *time.Location) *Runner {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &Runner{aggregator: agg, pipeline: pipe, sender: sender, store: store, defaultZone: defaultZone, now: time.Now}
}

// Run generates and delivers the dossier. The delivery is recorded only after a successful send,
// a failure to record is logged and doesn't fail the unit as the recipient already has the email.
// A send in a period that is already delivered is recorded without a period key.
func (r *Runner) Run(ctx context.Context, d domain.Dossier) error {
	items, failed, err := r.aggregator.Aggregate(ctx, d)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	if failed > 0 {
		lgr.Printf("[WARN] dossier %d, %d of %d feeds failed", d.ID, failed, len(d.Feeds))
	}

	text, err := r.pipeline.Run(ctx, d, items)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err = r.sender.Send(ctx, d, text, items); err != nil {
		return fmt.Errorf("deliver: %w", err)
	}

	now := r.now()
	loc := trigger.ResolveLocation(d.Timezone, r.defaultZone)
	rec := &domain.Delivery{
		DossierID:   d.ID,
		DeliveredAt: now,
		Content:     text,
		ItemCount:   len(items),
		Success:     true,
		PeriodKey:   domain.PeriodKey(d.Frequency, now.In(loc)),
	}

	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	err = r.store.RecordDelivery(recCtx, rec)
	if errors.Is(err, repository.ErrDuplicateDelivery) {
		// period already delivered, e.g. a manual run. keep the send in history without claiming the period
		lgr.Printf("[INFO] dossier %d already delivered for period %s, recorded as extra", d.ID, rec.PeriodKey)
		rec.PeriodKey = ""
		err = r.store.RecordDelivery(recCtx, rec)
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to record delivery of dossier %d: %v", d.ID, err)
	}
	return nil
}
