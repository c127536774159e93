package service

import (
	"context"
	"strings"

	"guild/internal/member/models"
	"guild/pkg/action"
	"guild/pkg/domain"
	"guild/pkg/platform/tx"
	"guild/pkg/requestcontext"
)

// AddInstitution creates an institution after checking the name is not
// already taken by an active record.
func (s *Service) AddInstitution(ctx context.Context, name, country, website string) action.Response[*models.Institution] {
	institution, err := models.NewInstitution(name, country, website, requestcontext.Now(ctx))
	if err != nil {
		return action.FromError[*models.Institution](err)
	}

	existing := s.institutions.First(ctx, func(i *models.Institution) bool {
		return i.IsActive() && strings.EqualFold(i.Name, institution.Name)
	})
	if existing.Successful {
		return action.Conflict[*models.Institution]("an institution with this name already exists")
	}
	if existing.Code != action.CodeNotFound {
		return action.ChangeType[*models.Institution](existing)
	}

	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Institution] {
		return s.institutions.Add(txCtx, institution)
	})
}

// GetInstitution returns an institution, inactive included.
func (s *Service) GetInstitution(ctx context.Context, id domain.InstitutionID) action.Response[*models.Institution] {
	if id.IsNil() {
		return action.Invalid[*models.Institution]("institution ID is required", nil)
	}
	return s.institutions.Get(ctx, id.UUID())
}

// ListInstitutions returns active institutions.
func (s *Service) ListInstitutions(ctx context.Context) action.Response[[]*models.Institution] {
	return s.institutions.List(ctx)
}

// DeleteInstitution soft-deletes an institution; education records keep
// referencing it for historical integrity.
func (s *Service) DeleteInstitution(ctx context.Context, id domain.InstitutionID) action.Response[*models.Institution] {
	if id.IsNil() {
		return action.Invalid[*models.Institution]("institution ID is required", nil)
	}
	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Institution] {
		return s.institutions.Delete(txCtx, id.UUID())
	})
}

// RestoreInstitution reactivates a soft-deleted institution.
func (s *Service) RestoreInstitution(ctx context.Context, id domain.InstitutionID) action.Response[*models.Institution] {
	if id.IsNil() {
		return action.Invalid[*models.Institution]("institution ID is required", nil)
	}
	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Institution] {
		return s.institutions.Restore(txCtx, id.UUID())
	})
}
