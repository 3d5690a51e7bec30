package repo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/store"
)

// Trips is the persisted trip collection, stored newest first under a single
// key. A mutex serializes read-modify-write cycles so concurrent adds cannot
// drop each other's entries.
type Trips struct {
	mu  sync.Mutex
	kv  store.KV
	log *slog.Logger
}

// NewTrips constructs a trip collection over the given store.
func NewTrips(kv store.KV, log *slog.Logger) *Trips {
	return &Trips{kv: kv, log: log}
}

// List returns all trips, newest first. Any read or decode failure falls
// back to the empty collection; the returned slice is never nil.
func (r *Trips) List(ctx context.Context) []domain.Trip {
	raw, err := r.kv.Get(ctx, keyTrips)
	if err != nil {
		if !errors.Is(err, store.ErrNoValue) {
			r.log.Warn("reading trips failed, falling back to empty", "error", err)
		}
		return []domain.Trip{}
	}

	var trips []domain.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		r.log.Warn("stored trips are malformed, falling back to empty", "error", err)
		return []domain.Trip{}
	}
	if trips == nil {
		return []domain.Trip{}
	}
	return trips
}

// Add prepends the trip to the collection and persists it best-effort.
// A write failure is logged and swallowed; the caller keeps the trip it
// already holds.
func (r *Trips) Add(ctx context.Context, trip domain.Trip) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips := append([]domain.Trip{trip}, r.List(ctx)...)
	r.save(ctx, trips)
}

// Clear removes every stored trip.
func (r *Trips) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(ctx, keyTrips); err != nil {
		r.log.Warn("clearing trips failed", "error", err)
	}
}

func (r *Trips) save(ctx context.Context, trips []domain.Trip) {
	raw, err := json.Marshal(trips)
	if err != nil {
		r.log.Warn("encoding trips failed, write skipped", "error", err)
		return
	}
	if err := r.kv.Set(ctx, keyTrips, raw); err != nil {
		r.log.Warn("writing trips failed", "error", err)
	}
}
