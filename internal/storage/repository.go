package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"guild/pkg/action"
	"guild/pkg/platform/sentinel"
	"guild/pkg/requestcontext"
)

// Repository exposes soft-delete CRUD over a backend, returning the uniform
// response envelope. Callers control transaction boundaries; the repository
// itself never opens one.
//
// Read defaults are asymmetric and preserved deliberately (see DESIGN.md):
// Get, the by-id read, includes inactive records; List, the collection read,
// excludes them. The explicit variants GetActive and ListAll flip each
// default.
type Repository[T Entity[T]] struct {
	backend Backend[T]
}

// NewRepository wraps a backend.
func NewRepository[T Entity[T]](backend Backend[T]) *Repository[T] {
	return &Repository[T]{backend: backend}
}

// Get returns the record with the given id, including inactive records.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) action.Response[T] {
	return r.get(ctx, id, true)
}

// GetActive returns the record with the given id only if it is active.
func (r *Repository[T]) GetActive(ctx context.Context, id uuid.UUID) action.Response[T] {
	return r.get(ctx, id, false)
}

func (r *Repository[T]) get(ctx context.Context, id uuid.UUID, includeInactive bool) action.Response[T] {
	entity, err := r.backend.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return action.NotFound[T]("")
		}
		return action.Failure[T](err.Error())
	}
	if !includeInactive && !entity.IsActive() {
		return action.NotFound[T]("")
	}
	return action.Success(entity)
}

// List returns all active records. It never fails on an empty result.
func (r *Repository[T]) List(ctx context.Context) action.Response[[]T] {
	return r.list(ctx, false)
}

// ListAll returns all records, inactive included.
func (r *Repository[T]) ListAll(ctx context.Context) action.Response[[]T] {
	return r.list(ctx, true)
}

func (r *Repository[T]) list(ctx context.Context, includeInactive bool) action.Response[[]T] {
	all, err := r.backend.FindAll(ctx)
	if err != nil {
		return action.Failure[[]T](err.Error())
	}
	if includeInactive {
		return action.Success(all)
	}
	active := make([]T, 0, len(all))
	for _, entity := range all {
		if entity.IsActive() {
			active = append(active, entity)
		}
	}
	return action.Success(active)
}

// First returns the first record matching the predicate. The predicate sees
// every record, inactive ones included; filter on IsActive inside the
// predicate when only live records qualify.
func (r *Repository[T]) First(ctx context.Context, match func(T) bool) action.Response[T] {
	all, err := r.backend.FindAll(ctx)
	if err != nil {
		return action.Failure[T](err.Error())
	}
	for _, entity := range all {
		if match(entity) {
			return action.Success(entity)
		}
	}
	return action.NotFound[T]("")
}

// Add persists a new record. A storage-constraint violation surfaces as a
// generic database error so backend detail never leaks to callers; uniqueness
// that callers care about is checked eagerly before mutation.
func (r *Repository[T]) Add(ctx context.Context, entity T) action.Response[T] {
	if err := r.backend.Insert(ctx, entity); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return action.Failure[T]("could not save record")
		}
		return action.Failure[T](err.Error())
	}
	return action.Success(entity)
}

// Update persists the full state of an existing record. The timestamp is
// touched on a copy so a failed update leaves the caller's entity untouched.
func (r *Repository[T]) Update(ctx context.Context, entity T) action.Response[T] {
	updated := entity.Clone()
	updated.Touch(requestcontext.Now(ctx))
	if err := r.backend.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return action.NotFound[T]("")
		case errors.Is(err, sentinel.ErrConflict):
			return action.Failure[T]("could not save record")
		default:
			return action.Failure[T](err.Error())
		}
	}
	return action.Success(updated)
}

// Delete soft-deletes the record: the lookup includes inactive records so a
// repeated delete finds its target and remains idempotent, then the active
// flag is flipped and the record updated.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) action.Response[T] {
	return r.setActive(ctx, id, false)
}

// Restore reactivates a soft-deleted record.
func (r *Repository[T]) Restore(ctx context.Context, id uuid.UUID) action.Response[T] {
	return r.setActive(ctx, id, true)
}

func (r *Repository[T]) setActive(ctx context.Context, id uuid.UUID, active bool) action.Response[T] {
	found := r.get(ctx, id, true)
	if !found.Successful {
		return found
	}
	entity := found.Result
	entity.SetActive(active)
	return r.Update(ctx, entity)
}
