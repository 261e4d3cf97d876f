package memory

import (
	"context"
	"sync"

	"medicine-tracker/internal/domain/history"
)

type historyRepo struct {
	mu      sync.RWMutex
	entries []history.Entry // más reciente primero
}

func NewHistoryRepo() history.Repository {
	return &historyRepo{}
}

func (r *historyRepo) Insert(ctx context.Context, e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]history.Entry{e}, r.entries...)
	if len(r.entries) > history.Capacity {
		r.entries = r.entries[:history.Capacity]
	}
	return nil
}

func (r *historyRepo) Recent(ctx context.Context, n int) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]history.Entry, n)
	copy(out, r.entries[:n])
	return out, nil
}

func (r *historyRepo) All(ctx context.Context) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	return nil
}
