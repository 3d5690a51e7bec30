package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nkarstens/geojourney/internal/domain"
)

// Clock abstracts wall-clock time so the tracker's elapsed-time arithmetic
// can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// LocationSource yields location fixes: a single-shot current position and a
// continuous observation. Fix delivery order is preserved by the tracker.
type LocationSource interface {
	// Current returns one fix, or an error when no fix can be acquired
	// (permission denied, no signal, nothing reported yet).
	Current(ctx context.Context) (domain.Coordinates, error)

	// Watch begins continuous observation. onFix is invoked once per fix in
	// delivery order; onErr at most once when acquisition fails. The returned
	// stop function cancels the observation; after it returns no further
	// callbacks are delivered.
	Watch(ctx context.Context, onFix func(domain.Coordinates), onErr func(error)) (stop func())
}

// ErrNoFix is returned by PushSource.Current before any fix has been pushed.
var ErrNoFix = errors.New("no location fix available")

// PushSource is a LocationSource fed by externally pushed fixes. The HTTP
// layer uses it to bridge a remote client that POSTs its geolocation readings;
// tests use it to script fix sequences.
type PushSource struct {
	mu      sync.Mutex
	latest  *domain.Coordinates
	nextID  int
	watches map[int]watcher
}

type watcher struct {
	onFix func(domain.Coordinates)
	onErr func(error)
}

// NewPushSource returns a PushSource with no fixes yet.
func NewPushSource() *PushSource {
	return &PushSource{watches: make(map[int]watcher)}
}

// Push records a fix as the latest known position and delivers it to every
// active watch.
func (s *PushSource) Push(c domain.Coordinates) {
	s.mu.Lock()
	s.latest = &c
	targets := make([]watcher, 0, len(s.watches))
	for _, w := range s.watches {
		targets = append(targets, w)
	}
	s.mu.Unlock()

	for _, w := range targets {
		w.onFix(c)
	}
}

// PushError delivers an acquisition error to every active watch, mirroring a
// device-side geolocation failure.
func (s *PushSource) PushError(err error) {
	s.mu.Lock()
	targets := make([]watcher, 0, len(s.watches))
	for _, w := range s.watches {
		targets = append(targets, w)
	}
	s.mu.Unlock()

	for _, w := range targets {
		w.onErr(err)
	}
}

// Current returns the most recently pushed fix, or ErrNoFix.
func (s *PushSource) Current(_ context.Context) (domain.Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		return domain.Coordinates{}, ErrNoFix
	}
	return *s.latest, nil
}

// Watch registers the callbacks until the returned stop function is called.
func (s *PushSource) Watch(_ context.Context, onFix func(domain.Coordinates), onErr func(error)) (stop func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watches[id] = watcher{onFix: onFix, onErr: onErr}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watches, id)
		s.mu.Unlock()
	}
}

// compile-time check: PushSource must satisfy LocationSource.
var _ LocationSource = (*PushSource)(nil)
