// Package session implements the live trip tracking state machine:
// idle → tracking ⇄ paused → stopping → idle.
//
// The tracker accumulates a coordinate path and elapsed time for exactly one
// in-progress trip. Elapsed time is always recomputed from absolute
// timestamps (accumulated-at-last-pause + now − active-segment-start); the
// once-per-second tick is a display convenience, never the source of truth,
// so a suspended or drifting timer cannot corrupt the recorded duration.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nkarstens/geojourney/internal/assist"
	"github.com/nkarstens/geojourney/internal/domain"
)

// Status names the tracker's lifecycle states.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusTracking Status = "tracking"
	StatusPaused   Status = "paused"
	StatusStopping Status = "stopping" // terminal transient while finalizing
)

// ErrSessionActive is returned by Start while a session is already running.
var ErrSessionActive = errors.New("a tracking session is already active")

// ErrNoSession is returned by Pause, Resume, and Stop when the tracker is
// not in a state that allows the transition.
var ErrNoSession = errors.New("no active tracking session")

// ErrAnalyzeFailed is returned by Stop when mode classification failed and
// the trip was saved with mode UNKNOWN. The trip is persisted regardless;
// the error is informational, never a trip loss.
var ErrAnalyzeFailed = errors.New("failed to analyze trip, saved with unknown mode")

// TripSaver persists a finalized trip. Satisfied by repo.Trips.
type TripSaver interface {
	Add(ctx context.Context, trip domain.Trip)
}

// Tracker is the live trip session state machine. All methods are safe for
// concurrent use; there is one logical writer and a mutex serializes the
// timer, watch, and HTTP callbacks that feed it.
type Tracker struct {
	clock    Clock
	source   LocationSource
	detector assist.ModeDetector
	saver    TripSaver
	log      *slog.Logger

	// onTick, when set, is invoked about once per second while tracking with
	// the current elapsed duration. Display only.
	onTick func(time.Duration)

	mu          sync.Mutex
	status      Status
	path        []domain.Coordinates
	notes       string
	startTime   time.Time     // nominal trip start; zero when idle
	activeStart time.Time     // start of the current tracking segment
	accumulated time.Duration // elapsed time frozen at the last pause
	lastErr     string        // last session-scoped error, for status reads

	// gen increments on every transition that invalidates outstanding
	// callbacks. A late watch or timer callback carrying a stale generation
	// has no handle to act on.
	gen         int
	cancelWatch func()
	stopTicker  chan struct{}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock substitutes the wall clock, for tests.
func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithTickFunc registers a callback invoked once per second with the current
// elapsed time while tracking.
func WithTickFunc(fn func(time.Duration)) Option {
	return func(t *Tracker) { t.onTick = fn }
}

// NewTracker constructs an idle Tracker.
func NewTracker(source LocationSource, detector assist.ModeDetector, saver TripSaver, log *slog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		clock:    SystemClock{},
		source:   source,
		detector: detector,
		saver:    saver,
		log:      log,
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins a new tracking session. It requires a successful single-shot
// location fix: either the fix arrives and tracking begins, or the tracker
// stays idle and the error is returned. No automatic retry.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusIdle {
		return fmt.Errorf("session.Tracker.Start: %w", ErrSessionActive)
	}

	fix, err := t.source.Current(ctx)
	if err != nil {
		return fmt.Errorf("session.Tracker.Start: could not get location: %w", err)
	}

	now := t.clock.Now()
	t.status = StatusTracking
	t.startTime = now
	t.activeStart = now
	t.accumulated = 0
	t.notes = ""
	t.lastErr = ""
	// The session's first point is stamped with the session start instant,
	// not the fix's own acquisition time.
	fix.Timestamp = now.UnixMilli()
	t.path = []domain.Coordinates{fix}

	t.beginObservation(ctx)
	return nil
}

// Pause suspends tracking: the location observation and the display timer are
// cancelled and the elapsed time so far is frozen.
func (t *Tracker) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusTracking {
		return fmt.Errorf("session.Tracker.Pause: %w", ErrNoSession)
	}

	t.endObservation()
	t.accumulated += t.clock.Now().Sub(t.activeStart)
	t.status = StatusPaused
	return nil
}

// Resume continues a paused session. The active segment restarts at now; the
// time accumulated before the pause is preserved as a base, not reset.
func (t *Tracker) Resume(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusPaused {
		return fmt.Errorf("session.Tracker.Resume: %w", ErrNoSession)
	}

	t.activeStart = t.clock.Now()
	t.status = StatusTracking
	t.beginObservation(ctx)
	return nil
}

// Stop finalizes the session. The observation and timer are cancelled first,
// in every outcome, and the tracker always returns to idle.
//
// With fewer than two recorded fixes the session is discarded and
// domain.ErrNotEnoughData is returned; no trip is created. Otherwise the path
// is classified and the trip persisted. A classification failure is recovered
// locally: the trip is saved with mode UNKNOWN and ErrAnalyzeFailed is
// returned next to it as a non-fatal notice.
func (t *Tracker) Stop(ctx context.Context) (domain.Trip, error) {
	t.mu.Lock()

	if t.status != StatusTracking && t.status != StatusPaused {
		t.mu.Unlock()
		return domain.Trip{}, fmt.Errorf("session.Tracker.Stop: %w", ErrNoSession)
	}

	t.endObservation()

	path := t.path
	notes := t.notes
	startTime := t.startTime
	endTime := t.clock.Now()

	if len(path) < 2 || startTime.IsZero() {
		t.resetLocked()
		t.lastErr = domain.ErrNotEnoughData.Error()
		t.mu.Unlock()
		return domain.Trip{}, fmt.Errorf("session.Tracker.Stop: %w", domain.ErrNotEnoughData)
	}

	// Classification can take a while; release the lock so status reads keep
	// working, and mark the transient state so no new session starts mid-save.
	t.status = StatusStopping
	t.mu.Unlock()

	var analyzeErr error
	mode, err := t.detector.DetectMode(ctx, path)
	if err != nil {
		t.log.Warn("mode classification failed, saving trip as unknown", "error", err)
		mode = domain.ModeUnknown
		analyzeErr = ErrAnalyzeFailed
	}

	trip := domain.Trip{
		ID:          uuid.NewString(),
		StartTime:   startTime.UnixMilli(),
		EndTime:     endTime.UnixMilli(),
		Origin:      path[0],
		Destination: path[len(path)-1],
		Mode:        mode,
		Path:        path,
		Notes:       notes,
	}
	t.saver.Add(ctx, trip)

	t.mu.Lock()
	t.resetLocked()
	if analyzeErr != nil {
		t.lastErr = analyzeErr.Error()
	}
	t.mu.Unlock()

	return trip, analyzeErr
}

// SetNotes attaches notes to the in-progress session. They are carried onto
// the finalized trip. No-op when idle.
func (t *Tracker) SetNotes(notes string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == StatusTracking || t.status == StatusPaused {
		t.notes = notes
	}
}

// Elapsed returns the session's elapsed time, recomputed from wall-clock
// timestamps. Zero when idle; frozen while paused.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Tracker) elapsedLocked() time.Duration {
	switch t.status {
	case StatusTracking, StatusStopping:
		return t.accumulated + t.clock.Now().Sub(t.activeStart)
	case StatusPaused:
		return t.accumulated
	default:
		return 0
	}
}

// Snapshot is a point-in-time view of the session for status endpoints.
type Snapshot struct {
	Status    Status        `json:"status"`
	Elapsed   time.Duration `json:"-"`
	ElapsedMS int64         `json:"elapsedMs"`
	PathLen   int           `json:"pathLength"`
	Notes     string        `json:"notes,omitempty"`
	LastError string        `json:"lastError,omitempty"`
}

// Snapshot returns the current session state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := t.elapsedLocked()
	return Snapshot{
		Status:    t.status,
		Elapsed:   elapsed,
		ElapsedMS: elapsed.Milliseconds(),
		PathLen:   len(t.path),
		Notes:     t.notes,
		LastError: t.lastErr,
	}
}

// ---- internals -------------------------------------------------------------

// beginObservation starts the location watch and the display timer for the
// current generation. Callers must hold the mutex.
func (t *Tracker) beginObservation(ctx context.Context) {
	t.gen++
	gen := t.gen

	t.cancelWatch = t.source.Watch(ctx,
		func(fix domain.Coordinates) { t.handleFix(gen, fix) },
		func(err error) { t.handleWatchError(gen, err) },
	)

	if t.onTick != nil {
		stop := make(chan struct{})
		t.stopTicker = stop
		go t.runTicker(gen, stop)
	}
}

// endObservation cancels the watch and timer and clears their handles so a
// late in-flight callback has nothing to act on. Callers must hold the mutex.
func (t *Tracker) endObservation() {
	t.gen++
	if t.cancelWatch != nil {
		t.cancelWatch()
		t.cancelWatch = nil
	}
	if t.stopTicker != nil {
		close(t.stopTicker)
		t.stopTicker = nil
	}
}

// resetLocked returns the tracker to idle, discarding all session state.
func (t *Tracker) resetLocked() {
	t.status = StatusIdle
	t.path = nil
	t.notes = ""
	t.startTime = time.Time{}
	t.activeStart = time.Time{}
	t.accumulated = 0
	t.lastErr = ""
}

// handleFix appends a delivered fix in arrival order. Fixes carrying a stale
// generation (delivered after a pause or stop) are dropped.
func (t *Tracker) handleFix(gen int, fix domain.Coordinates) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.gen != gen || t.status != StatusTracking {
		return
	}
	t.path = append(t.path, fix)
}

// handleWatchError aborts tracking through the regular stop path, saving
// whatever path was collected best-effort. The error text is kept on the
// session so the next status read can surface it.
func (t *Tracker) handleWatchError(gen int, err error) {
	t.mu.Lock()
	if t.gen != gen || t.status != StatusTracking {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.log.Warn("location watch failed, stopping session", "error", err)
	if _, stopErr := t.Stop(context.Background()); stopErr != nil && !errors.Is(stopErr, ErrAnalyzeFailed) {
		t.log.Warn("best-effort save after watch error failed", "error", stopErr)
	}

	// Recorded after Stop so the reset does not wipe it; the next status
	// read reports both the abort and how finalizing went.
	t.mu.Lock()
	t.lastErr = fmt.Sprintf("location tracking error: %v", err)
	t.mu.Unlock()
}

// runTicker drives the display callback once per second until stopped.
func (t *Tracker) runTicker(gen int, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			stale := t.gen != gen || t.status != StatusTracking
			elapsed := t.elapsedLocked()
			t.mu.Unlock()
			if stale {
				return
			}
			t.onTick(elapsed)
		}
	}
}
