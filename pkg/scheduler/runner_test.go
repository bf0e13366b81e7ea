package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dossier/pkg/domain"
	"github.com/umputun/dossier/pkg/repository"
	"github.com/umputun/dossier/pkg/scheduler/mocks"
)

type runnerDeps struct {
	agg    *mocks.AggregatorMock
	pipe   *mocks.PipelineMock
	sender *mocks.SenderMock
	store  *mocks.DossierStoreMock
}

func newTestRunner(recordErr error) (*Runner, runnerDeps) {
	deps := runnerDeps{
		agg: &mocks.AggregatorMock{AggregateFunc: func(ctx context.Context, d domain.Dossier) ([]domain.Item, int, error) {
			return []domain.Item{{Title: "one"}, {Title: "two"}, {Title: "three"}}, 0, nil
		}},
		pipe: &mocks.PipelineMock{RunFunc: func(ctx context.Context, d domain.Dossier, items []domain.Item) (string, error) {
			return "the dossier text", nil
		}},
		sender: &mocks.SenderMock{SendFunc: func(ctx context.Context, d domain.Dossier, text string, items []domain.Item) error {
			return nil
		}},
		store: &mocks.DossierStoreMock{RecordDeliveryFunc: func(ctx context.Context, d *domain.Delivery) error {
			return recordErr
		}},
	}
	r := NewRunner(deps.agg, deps.pipe, deps.sender, deps.store, time.UTC)
	return r, deps
}

func TestRunner_Run(t *testing.T) {
	r, deps := newTestRunner(nil)
	now := time.Date(2024, 12, 29, 20, 0, 0, 0, time.UTC) // monday 05:00 in tokyo
	r.now = func() time.Time { return now }

	d := domain.Dossier{ID: 7, Name: "weekly", Frequency: domain.FrequencyWeekly, Timezone: "Asia/Tokyo",
		Feeds: []string{"a", "b"}}
	require.NoError(t, r.Run(context.Background(), d))

	require.Len(t, deps.pipe.RunCalls(), 1)
	assert.Len(t, deps.pipe.RunCalls()[0].Items, 3)

	require.Len(t, deps.sender.SendCalls(), 1)
	assert.Equal(t, "the dossier text", deps.sender.SendCalls()[0].Text)
	assert.Equal(t, int64(7), deps.sender.SendCalls()[0].D.ID)

	require.Len(t, deps.store.RecordDeliveryCalls(), 1)
	rec := deps.store.RecordDeliveryCalls()[0].D
	assert.Equal(t, int64(7), rec.DossierID)
	assert.Equal(t, now, rec.DeliveredAt)
	assert.Equal(t, "the dossier text", rec.Content)
	assert.Equal(t, 3, rec.ItemCount)
	assert.True(t, rec.Success)
	assert.Equal(t, "2025-W01", rec.PeriodKey, "period computed in dossier zone")
}

func TestRunner_Run_DefaultZone(t *testing.T) {
	r, deps := newTestRunner(nil)
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	r.defaultZone = ny
	r.now = func() time.Time { return time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC) }

	require.NoError(t, r.Run(context.Background(), domain.Dossier{ID: 1, Frequency: domain.FrequencyDaily}))
	require.Len(t, deps.store.RecordDeliveryCalls(), 1)
	assert.Equal(t, "2024-03-09", deps.store.RecordDeliveryCalls()[0].D.PeriodKey)
}

func TestRunner_Run_Failures(t *testing.T) {
	t.Run("aggregation failure stops the unit", func(t *testing.T) {
		r, deps := newTestRunner(nil)
		deps.agg.AggregateFunc = func(ctx context.Context, d domain.Dossier) ([]domain.Item, int, error) {
			return nil, 2, errors.New("no items")
		}
		err := r.Run(context.Background(), domain.Dossier{ID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "aggregate")
		assert.Empty(t, deps.pipe.RunCalls())
		assert.Empty(t, deps.sender.SendCalls())
		assert.Empty(t, deps.store.RecordDeliveryCalls())
	})

	t.Run("pipeline failure", func(t *testing.T) {
		r, deps := newTestRunner(nil)
		deps.pipe.RunFunc = func(ctx context.Context, d domain.Dossier, items []domain.Item) (string, error) {
			return "", errors.New("llm down")
		}
		err := r.Run(context.Background(), domain.Dossier{ID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pipeline: llm down")
		assert.Empty(t, deps.sender.SendCalls())
		assert.Empty(t, deps.store.RecordDeliveryCalls())
	})

	t.Run("send failure leaves no record", func(t *testing.T) {
		r, deps := newTestRunner(nil)
		deps.sender.SendFunc = func(ctx context.Context, d domain.Dossier, text string, items []domain.Item) error {
			return errors.New("smtp refused")
		}
		err := r.Run(context.Background(), domain.Dossier{ID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deliver: smtp refused")
		assert.Empty(t, deps.store.RecordDeliveryCalls())
	})

	t.Run("partial feed failure still delivers", func(t *testing.T) {
		r, deps := newTestRunner(nil)
		deps.agg.AggregateFunc = func(ctx context.Context, d domain.Dossier) ([]domain.Item, int, error) {
			return []domain.Item{{Title: "x"}}, 1, nil
		}
		require.NoError(t, r.Run(context.Background(), domain.Dossier{ID: 1, Feeds: []string{"a", "b"}}))
		assert.Len(t, deps.sender.SendCalls(), 1)
		assert.Len(t, deps.store.RecordDeliveryCalls(), 1)
	})
}

func TestRunner_Run_RecordErrors(t *testing.T) {
	tbl := []struct {
		name      string
		keyedErr  error
		extraErr  error
		wantCalls int
	}{
		{name: "duplicate period recorded as extra", keyedErr: fmt.Errorf("insert: %w", repository.ErrDuplicateDelivery),
			wantCalls: 2},
		{name: "duplicate period, extra record fails", keyedErr: repository.ErrDuplicateDelivery,
			extraErr: errors.New("disk full"), wantCalls: 2},
		{name: "database error", keyedErr: errors.New("disk full"), wantCalls: 1},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			r, deps := newTestRunner(nil)
			var keys []string
			deps.store.RecordDeliveryFunc = func(ctx context.Context, d *domain.Delivery) error {
				keys = append(keys, d.PeriodKey)
				if d.PeriodKey != "" {
					return tt.keyedErr
				}
				return tt.extraErr
			}
			r.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }

			d := domain.Dossier{ID: 1, Frequency: domain.FrequencyDaily}
			require.NoError(t, r.Run(context.Background(), d), "sent email is not a failure")
			assert.Len(t, deps.sender.SendCalls(), 1)
			require.Len(t, deps.store.RecordDeliveryCalls(), tt.wantCalls)
			assert.Equal(t, "2024-03-10", keys[0])
			if tt.wantCalls == 2 {
				assert.Empty(t, keys[1], "extra send doesn't claim the period")
				assert.Equal(t, "the dossier text", deps.store.RecordDeliveryCalls()[1].D.Content)
			}
		})
	}
}

func TestRunner_Run_RecordSurvivesCanceledUnit(t *testing.T) {
	r, deps := newTestRunner(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deps.sender.SendFunc = func(ctx context.Context, d domain.Dossier, text string, items []domain.Item) error {
		cancel() // deadline hit right after the email went out
		return nil
	}
	var recordCtxErr error
	deps.store.RecordDeliveryFunc = func(ctx context.Context, d *domain.Delivery) error {
		recordCtxErr = ctx.Err()
		return nil
	}

	require.NoError(t, r.Run(ctx, domain.Dossier{ID: 1}))
	require.Len(t, deps.store.RecordDeliveryCalls(), 1)
	assert.NoError(t, recordCtxErr)
}
