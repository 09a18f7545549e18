// Package checkin implements the sequential check-in workflow: a snapshot of
// today's scheduled visits is walked one at a time, with each completion
// persisted through the visit service before the cursor advances.
package checkin

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cliniq/cliniq/internal/domain/visit"
)

var (
	// ErrEmptyQueue is returned by Start when no visits are scheduled
	// today. It is an expected outcome, not a fault.
	ErrEmptyQueue = errors.New("no scheduled visits for today")

	// ErrSessionActive is returned by Start when a session is already
	// running.
	ErrSessionActive = errors.New("check-in session already active")

	// ErrNoSession is returned by Complete and Skip when no session is
	// active.
	ErrNoSession = errors.New("no active check-in session")
)

// VisitSource is the slice of the visit service the engine needs.
type VisitSource interface {
	List(ctx context.Context, q visit.Query) ([]*visit.View, error)
	Update(ctx context.Context, id int64, params visit.UpdateParams) (*visit.View, error)
}

// Progress reports the state of the queue after an advance.
type Progress struct {
	Done      bool `json:"done"`
	Remaining int  `json:"remaining"`
}

// State describes the session for clients.
type State struct {
	Active    bool        `json:"active"`
	Visit     *visit.View `json:"visit"`
	Position  int         `json:"position,omitempty"`
	Total     int         `json:"total,omitempty"`
	Remaining int         `json:"remaining,omitempty"`
}

// Engine holds a process-local check-in session. A mutex serializes all
// operations; the queue is a snapshot taken at Start and is not refreshed
// if visits change underneath it.
type Engine struct {
	mu     sync.Mutex
	visits VisitSource
	queue  []*visit.View
	cursor int
	active bool
	now    func() time.Time
}

func NewEngine(visits VisitSource) *Engine {
	return &Engine{visits: visits, now: time.Now}
}

// Start snapshots today's scheduled visits sorted earliest first and
// activates the session. Returns the queue length.
func (e *Engine) Start(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		return 0, ErrSessionActive
	}

	today := e.now().Format("2006-01-02")
	items, err := e.visits.List(ctx, visit.Query{
		StartDate: today,
		EndDate:   today,
		Status:    visit.StatusScheduled,
	})
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, ErrEmptyQueue
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].VisitDate.Before(items[j].VisitDate)
	})

	e.queue = items
	e.cursor = 0
	e.active = true
	return len(items), nil
}

// Current returns the session state. When idle, Active is false and Visit
// is nil.
func (e *Engine) Current() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return State{}
	}
	return State{
		Active:    true,
		Visit:     e.queue[e.cursor],
		Position:  e.cursor + 1,
		Total:     len(e.queue),
		Remaining: len(e.queue) - e.cursor,
	}
}

// Complete marks the current visit completed and advances. A non-empty
// notes argument replaces the visit's notes; an empty one keeps them. The
// write happens before the cursor moves, so a persistence failure leaves
// the session pointing at the same visit.
func (e *Engine) Complete(ctx context.Context, notes string) (Progress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return Progress{}, ErrNoSession
	}

	current := e.queue[e.cursor]
	resolved := notes
	if resolved == "" && current.Notes != nil {
		resolved = *current.Notes
	}

	status := visit.StatusCompleted
	if _, err := e.visits.Update(ctx, current.ID, visit.UpdateParams{
		Status: &status,
		Notes:  &resolved,
	}); err != nil {
		return Progress{}, err
	}

	return e.advance(), nil
}

// Skip advances past the current visit without writing anything.
func (e *Engine) Skip() (Progress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return Progress{}, ErrNoSession
	}
	return e.advance(), nil
}

// Cancel ends the session and discards the snapshot. Safe to call when
// idle.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// advance moves the cursor and resets to idle when the queue is exhausted.
// Callers must hold the mutex.
func (e *Engine) advance() Progress {
	e.cursor++
	if e.cursor >= len(e.queue) {
		e.reset()
		return Progress{Done: true}
	}
	return Progress{Remaining: len(e.queue) - e.cursor}
}

func (e *Engine) reset() {
	e.active = false
	e.cursor = 0
	e.queue = nil
}
