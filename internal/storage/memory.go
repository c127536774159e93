package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"guild/pkg/platform/sentinel"
)

// Memory is an in-memory backend used by tests and local development. It
// hands out clones so callers never alias stored state, keeps insertion order
// for deterministic listings, and supports snapshot/restore so the in-memory
// transaction runner can roll back.
type Memory[T Entity[T]] struct {
	mu     sync.RWMutex
	rows   map[uuid.UUID]T
	order  []uuid.UUID
	unique []uniqueKey[T]
}

type uniqueKey[T Entity[T]] struct {
	name string
	key  func(T) string
}

// MemoryOption configures a Memory backend.
type MemoryOption[T Entity[T]] func(*Memory[T])

// WithUniqueKey emulates a storage uniqueness constraint: inserting or
// updating a record whose key collides with another record's returns
// sentinel.ErrConflict, the same way the SQL backend reports SQLSTATE 23505.
// Empty keys are exempt.
func WithUniqueKey[T Entity[T]](name string, key func(T) string) MemoryOption[T] {
	return func(m *Memory[T]) {
		m.unique = append(m.unique, uniqueKey[T]{name: name, key: key})
	}
}

// NewMemory creates an empty in-memory backend.
func NewMemory[T Entity[T]](opts ...MemoryOption[T]) *Memory[T] {
	m := &Memory[T]{rows: make(map[uuid.UUID]T)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory[T]) Find(_ context.Context, id uuid.UUID) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entity, ok := m.rows[id]
	if !ok {
		var zero T
		return zero, sentinel.ErrNotFound
	}
	return entity.Clone(), nil
}

func (m *Memory[T]) FindAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]T, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, m.rows[id].Clone())
	}
	return all, nil
}

func (m *Memory[T]) Insert(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.rows[entity.EntityID()]; exists {
		return sentinel.ErrConflict
	}
	if err := m.checkUnique(entity); err != nil {
		return err
	}
	m.rows[entity.EntityID()] = entity.Clone()
	m.order = append(m.order, entity.EntityID())
	return nil
}

func (m *Memory[T]) Update(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.rows[entity.EntityID()]; !exists {
		return sentinel.ErrNotFound
	}
	if err := m.checkUnique(entity); err != nil {
		return err
	}
	m.rows[entity.EntityID()] = entity.Clone()
	return nil
}

func (m *Memory[T]) checkUnique(entity T) error {
	for _, u := range m.unique {
		key := u.key(entity)
		if key == "" {
			continue
		}
		for id, other := range m.rows {
			if id != entity.EntityID() && u.key(other) == key {
				return sentinel.ErrConflict
			}
		}
	}
	return nil
}

// Snapshot captures the current contents for a later Restore.
func (m *Memory[T]) Snapshot() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := make(map[uuid.UUID]T, len(m.rows))
	for id, entity := range m.rows {
		rows[id] = entity.Clone()
	}
	order := make([]uuid.UUID, len(m.order))
	copy(order, m.order)
	return memorySnapshot[T]{rows: rows, order: order}
}

// Restore replaces the contents with a previously captured snapshot.
func (m *Memory[T]) Restore(snapshot any) {
	snap, ok := snapshot.(memorySnapshot[T])
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = snap.rows
	m.order = snap.order
}

type memorySnapshot[T Entity[T]] struct {
	rows  map[uuid.UUID]T
	order []uuid.UUID
}
