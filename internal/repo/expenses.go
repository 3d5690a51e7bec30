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

// Expenses is the persisted expense collection, stored newest first under a
// single key, with the same best-effort semantics as Trips.
type Expenses struct {
	mu  sync.Mutex
	kv  store.KV
	log *slog.Logger
}

// NewExpenses constructs an expense collection over the given store.
func NewExpenses(kv store.KV, log *slog.Logger) *Expenses {
	return &Expenses{kv: kv, log: log}
}

// List returns all expenses, newest first. Read or decode failures fall back
// to the empty collection; the returned slice is never nil.
func (r *Expenses) List(ctx context.Context) []domain.Expense {
	raw, err := r.kv.Get(ctx, keyExpenses)
	if err != nil {
		if !errors.Is(err, store.ErrNoValue) {
			r.log.Warn("reading expenses failed, falling back to empty", "error", err)
		}
		return []domain.Expense{}
	}

	var expenses []domain.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		r.log.Warn("stored expenses are malformed, falling back to empty", "error", err)
		return []domain.Expense{}
	}
	if expenses == nil {
		return []domain.Expense{}
	}
	return expenses
}

// Add prepends the expense and persists best-effort.
func (r *Expenses) Add(ctx context.Context, expense domain.Expense) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expenses := append([]domain.Expense{expense}, r.List(ctx)...)
	r.save(ctx, expenses)
}

// Clear removes every stored expense.
func (r *Expenses) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(ctx, keyExpenses); err != nil {
		r.log.Warn("clearing expenses failed", "error", err)
	}
}

func (r *Expenses) save(ctx context.Context, expenses []domain.Expense) {
	raw, err := json.Marshal(expenses)
	if err != nil {
		r.log.Warn("encoding expenses failed, write skipped", "error", err)
		return
	}
	if err := r.kv.Set(ctx, keyExpenses, raw); err != nil {
		r.log.Warn("writing expenses failed", "error", err)
	}
}
