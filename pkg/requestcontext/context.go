// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them; keeping the
// package free of net/http lets services depend on it without pulling in
// transport code.
package requestcontext

import (
	"context"
	"time"

	"guild/pkg/domain"
)

type (
	personIDKey    struct{}
	rolesKey       struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// PersonID retrieves the authenticated person ID from the context. Returns
// the zero value when the request is unauthenticated.
func PersonID(ctx context.Context) domain.PersonID {
	if id, ok := ctx.Value(personIDKey{}).(domain.PersonID); ok {
		return id
	}
	return domain.PersonID{}
}

// WithPersonID injects an authenticated person ID into the context.
func WithPersonID(ctx context.Context, id domain.PersonID) context.Context {
	return context.WithValue(ctx, personIDKey{}, id)
}

// Roles retrieves the authenticated principal's role names.
func Roles(ctx context.Context) []string {
	if roles, ok := ctx.Value(rolesKey{}).([]string); ok {
		return roles
	}
	return nil
}

// WithRoles injects role names into the context.
func WithRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, rolesKey{}, roles)
}

// HasRole reports whether the context carries the given role.
func HasRole(ctx context.Context, role string) bool {
	for _, r := range Roles(ctx) {
		if r == role {
			return true
		}
	}
	return false
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time from context, falling back to
// time.Now for non-HTTP contexts such as workers and tests that don't set
// one. Duration math over ongoing date ranges reads its "now" from here so
// tests can pin it.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
