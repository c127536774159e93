// Package service orchestrates the membership workflows: registration,
// approval decisions, and the ownership-checked history mutations. Every
// operation returns the uniform response envelope; expected failures never
// surface as errors or panics.
package service

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"guild/internal/files"
	"guild/internal/identity"
	membermetrics "guild/internal/member/metrics"
	"guild/internal/member/models"
	"guild/internal/storage"
	"guild/pkg/platform/tx"
)

// Service carries the repositories and external collaborators the workflows
// compose. Transactions are scoped per workflow invocation through the
// runner; the service holds no mutable state of its own.
type Service struct {
	people       *storage.Repository[*models.Person]
	members      *storage.Repository[*models.Member]
	educations   *storage.Repository[*models.Education]
	experiences  *storage.Repository[*models.WorkExperience]
	institutions *storage.Repository[*models.Institution]
	identity     identity.Manager
	blobs        files.BlobStore
	tx           tx.Runner
	logger       *slog.Logger
	metrics      *membermetrics.Metrics
	tracer       trace.Tracer
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithMetrics attaches the member metrics.
func WithMetrics(m *membermetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithBlobStore attaches the document store used by education records.
func WithBlobStore(blobs files.BlobStore) Option {
	return func(s *Service) { s.blobs = blobs }
}

// New builds the member service.
func New(
	people *storage.Repository[*models.Person],
	members *storage.Repository[*models.Member],
	educations *storage.Repository[*models.Education],
	experiences *storage.Repository[*models.WorkExperience],
	institutions *storage.Repository[*models.Institution],
	identityManager identity.Manager,
	runner tx.Runner,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		people:       people,
		members:      members,
		educations:   educations,
		experiences:  experiences,
		institutions: institutions,
		identity:     identityManager,
		tx:           runner,
		logger:       logger,
		tracer:       otel.Tracer("guild/internal/member/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
