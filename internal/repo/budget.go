package repo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/nkarstens/geojourney/internal/domain"
	"github.com/nkarstens/geojourney/internal/store"
)

// BudgetRepo persists the singleton budget. The budget is replaced wholesale
// on save and deleted outright on clear; absent means "no budget set".
type BudgetRepo struct {
	kv  store.KV
	log *slog.Logger
}

// NewBudget constructs a budget repo over the given store.
func NewBudget(kv store.KV, log *slog.Logger) *BudgetRepo {
	return &BudgetRepo{kv: kv, log: log}
}

// Get returns the stored budget, or nil when none is set. Read and decode
// failures fall back to nil.
func (r *BudgetRepo) Get(ctx context.Context) *domain.Budget {
	raw, err := r.kv.Get(ctx, keyBudget)
	if err != nil {
		if !errors.Is(err, store.ErrNoValue) {
			r.log.Warn("reading budget failed, treating as unset", "error", err)
		}
		return nil
	}

	var b domain.Budget
	if err := json.Unmarshal(raw, &b); err != nil {
		r.log.Warn("stored budget is malformed, treating as unset", "error", err)
		return nil
	}
	return &b
}

// Save replaces the stored budget best-effort.
func (r *BudgetRepo) Save(ctx context.Context, b domain.Budget) {
	raw, err := json.Marshal(b)
	if err != nil {
		r.log.Warn("encoding budget failed, write skipped", "error", err)
		return
	}
	if err := r.kv.Set(ctx, keyBudget, raw); err != nil {
		r.log.Warn("writing budget failed", "error", err)
	}
}

// Clear removes the stored budget.
func (r *BudgetRepo) Clear(ctx context.Context) {
	if err := r.kv.Delete(ctx, keyBudget); err != nil {
		r.log.Warn("clearing budget failed", "error", err)
	}
}
