package storage

import (
	"context"
	"sync"
)

// Snapshotter is implemented by stores that can capture and restore their
// state, which is how the in-memory transaction runner rolls back.
type Snapshotter interface {
	Snapshot() any
	Restore(snapshot any)
}

// MemoryTx is the in-memory tx.Runner: a coarse lock over every registered
// store plus snapshot/restore. It serializes workflows, which is acceptable
// for tests and local development where it is used.
type MemoryTx struct {
	mu     sync.Mutex
	stores []Snapshotter
}

// NewMemoryTx builds a runner over the given stores. Every store a workflow
// mutates must be registered or its writes survive a rollback.
func NewMemoryTx(stores ...Snapshotter) *MemoryTx {
	return &MemoryTx{stores: stores}
}

// Register adds stores after construction.
func (t *MemoryTx) Register(stores ...Snapshotter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stores = append(t.stores, stores...)
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshots := make([]any, len(t.stores))
	for i, store := range t.stores {
		snapshots[i] = store.Snapshot()
	}

	if err := fn(ctx); err != nil {
		for i, store := range t.stores {
			store.Restore(snapshots[i])
		}
		return err
	}
	return nil
}
