package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/umputun/dossier/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . DossierStore Trigger UnitRunner

// ErrInFlight is returned by RunNow when the dossier is being generated already
var ErrInFlight = errors.New("dossier generation in progress")

// DossierStore provides dossiers and persists delivery records
type DossierStore interface {
	ListActive(ctx context.Context) ([]domain.Dossier, error)
	GetDossier(ctx context.Context, id int64) (*domain.Dossier, error)
	RecordDelivery(ctx context.Context, d *domain.Delivery) error
}

// Trigger decides whether a dossier is due at the given moment
type Trigger interface {
	IsDue(ctx context.Context, d domain.Dossier, now time.Time) bool
}

// UnitRunner generates and delivers one dossier
type UnitRunner interface {
	Run(ctx context.Context, d domain.Dossier) error
}

// State of the scheduler loop
type State int

// scheduler states
const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// Params contains scheduler dependencies and settings
type Params struct {
	Store   DossierStore
	Trigger Trigger
	Runner  UnitRunner

	TickInterval time.Duration // trigger evaluation interval, ticks are aligned to its boundaries
	MaxWorkers   int           // dossiers generated concurrently
	UnitTimeout  time.Duration // deadline of a single generation and delivery
}

// Scheduler evaluates triggers on a fixed tick and dispatches due dossiers to a bounded worker pool.
// Dispatched units are independent of the loop, stopping the loop doesn't cancel them.
type Scheduler struct {
	store        DossierStore
	trigger      Trigger
	runner       UnitRunner
	tickInterval time.Duration
	maxWorkers   int
	unitTimeout  time.Duration
	now          func() time.Time

	mu       sync.Mutex
	state    State
	loop     *loopHandle
	inFlight map[int64]bool

	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// loopHandle owns the running tick loop
type loopHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler, zero settings get defaults
func NewScheduler(params Params) *Scheduler {
	if params.TickInterval <= 0 {
		params.TickInterval = time.Minute
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	if params.UnitTimeout <= 0 {
		params.UnitTimeout = 10 * time.Minute
	}
	return &Scheduler{
		store:        params.Store,
		trigger:      params.Trigger,
		runner:       params.Runner,
		tickInterval: params.TickInterval,
		maxWorkers:   params.MaxWorkers,
		unitTimeout:  params.UnitTimeout,
		now:          time.Now,
		inFlight:     make(map[int64]bool),
		sem:          semaphore.NewWeighted(int64(params.MaxWorkers)),
	}
}

// Start begins the tick loop. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		lgr.Printf("[INFO] scheduler already running")
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.loop = &loopHandle{cancel: cancel, done: make(chan struct{})}
	s.state = StateRunning
	go s.run(loopCtx, s.loop.done)
	lgr.Printf("[INFO] scheduler started, tick %v, max workers %d", s.tickInterval, s.maxWorkers)
}

// Stop halts future ticks and waits for the loop to exit. In-flight units keep running, use Wait for them.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	h := s.loop
	s.loop = nil
	s.state = StateStopped
	s.mu.Unlock()

	h.cancel()
	<-h.done
	lgr.Printf("[INFO] scheduler stopped")
}

// IsRunning reports whether the tick loop is active
func (s *Scheduler) IsRunning() bool {
	return s.State() == StateRunning
}

// State returns the current state
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InFlight returns the number of dispatched units not finished yet
func (s *Scheduler) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}

// Wait blocks until all dispatched units are finished or ctx is done
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow dispatches the dossier immediately, bypassing its trigger
func (s *Scheduler) RunNow(ctx context.Context, id int64) error {
	d, err := s.store.GetDossier(ctx, id)
	if err != nil {
		return fmt.Errorf("get dossier %d: %w", id, err)
	}
	if !s.dispatch(*d) {
		return ErrInFlight
	}
	return nil
}

// Tick evaluates all active dossiers once and dispatches the due ones
func (s *Scheduler) Tick(ctx context.Context) {
	dossiers, err := s.store.ListActive(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list active dossiers: %v", err)
		return
	}

	now := s.now()
	due := 0
	for _, d := range dossiers {
		if !s.trigger.IsDue(ctx, d, now) {
			continue
		}
		due++
		s.dispatch(d)
	}
	if due > 0 {
		lgr.Printf("[DEBUG] tick %s, %d of %d dossiers due", now.Format(time.RFC3339), due, len(dossiers))
	}
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		// loop exited on the parent context, not via Stop
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.loop != nil && s.loop.done == done {
			s.loop = nil
			s.state = StateStopped
			lgr.Printf("[INFO] scheduler stopped, %v", context.Cause(ctx))
		}
	}()

	s.Tick(ctx)
	timer := time.NewTimer(s.untilNextTick())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.Tick(ctx)
			timer.Reset(s.untilNextTick())
		}
	}
}

// untilNextTick returns the delay to the next interval boundary, so a minute tick never skips a minute
func (s *Scheduler) untilNextTick() time.Duration {
	now := time.Now()
	return now.Truncate(s.tickInterval).Add(s.tickInterval).Sub(now)
}

// dispatch starts a unit for the dossier unless one is in flight already. The unit waits for a
// free worker slot, the number of waiting units is bounded by the number of dossiers.
func (s *Scheduler) dispatch(d domain.Dossier) bool {
	s.mu.Lock()
	if s.inFlight[d.ID] {
		s.mu.Unlock()
		lgr.Printf("[INFO] dossier %d (%s) still in progress, skipped", d.ID, d.Name)
		return false
	}
	s.inFlight[d.ID] = true
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, d.ID)
			s.mu.Unlock()
		}()

		if err := s.sem.Acquire(context.Background(), 1); err != nil {
			lgr.Printf("[ERROR] can't acquire worker for dossier %d: %v", d.ID, err)
			return
		}
		defer s.sem.Release(1)
		s.execute(d)
	}()
	return true
}

// execute runs one unit with its own deadline, a panic is logged and doesn't affect other units
func (s *Scheduler) execute(d domain.Dossier) {
	runID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] run %s, dossier %d panicked: %v\n%s", runID, d.ID, r, debug.Stack())
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.unitTimeout)
	defer cancel()

	st := time.Now()
	lgr.Printf("[INFO] run %s, generating dossier %d (%s)", runID, d.ID, d.Name)
	if err := s.runner.Run(ctx, d); err != nil {
		lgr.Printf("[ERROR] run %s, dossier %d failed after %v: %v", runID, d.ID, time.Since(st).Round(time.Millisecond), err)
		return
	}
	lgr.Printf("[INFO] run %s, dossier %d delivered in %v", runID, d.ID, time.Since(st).Round(time.Millisecond))
}
