// Package storage implements the generic soft-delete repository. Records are
// never physically deleted: delete flips the active flag and restore flips it
// back, preserving historical referential integrity. Backends (in-memory,
// postgres) implement the low-level seam and return sentinel errors; the
// repository translates them into action responses.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entity is the capability every persisted record carries: a UUID identity,
// an active flag, and value-copy support so backends can hand out copies
// instead of aliases. T is the concrete pointer type implementing the
// interface.
type Entity[T any] interface {
	EntityID() uuid.UUID
	IsActive() bool
	SetActive(active bool)
	Touch(now time.Time)
	Clone() T
}

// Record is the embeddable base for soft-deletable entities.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecord returns a fresh active record with a generated identity.
func NewRecord(now time.Time) Record {
	return Record{ID: uuid.New(), Active: true, CreatedAt: now, UpdatedAt: now}
}

func (r *Record) EntityID() uuid.UUID      { return r.ID }
func (r *Record) IsActive() bool           { return r.Active }
func (r *Record) SetActive(active bool)    { r.Active = active }
func (r *Record) Touch(now time.Time)      { r.UpdatedAt = now }

// Backend is the storage seam a SQL store, document store, or in-memory fake
// implements. Find must locate records regardless of the active flag; the
// repository applies active-flag filtering itself so all backends behave
// identically. Errors are sentinels from pkg/platform/sentinel.
type Backend[T Entity[T]] interface {
	Find(ctx context.Context, id uuid.UUID) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
}
