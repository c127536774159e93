package service

import (
	"context"

	"github.com/google/uuid"

	"guild/internal/member/models"
	"guild/pkg/action"
	"guild/pkg/domain"
	"guild/pkg/platform/tx"
	"guild/pkg/requestcontext"
)

// WorkExperienceInput is the create/update payload for a work-history record.
type WorkExperienceInput struct {
	Company     string
	Position    string
	Description string
	Period      PeriodInput
}

// AddWorkExperience creates a work-history record owned by the acting person.
func (s *Service) AddWorkExperience(ctx context.Context, actor domain.PersonID, input WorkExperienceInput) action.Response[*models.WorkExperience] {
	if actor.IsNil() {
		return action.Unauthorized[*models.WorkExperience]("authentication required")
	}
	start, end, err := input.Period.resolve()
	if err != nil {
		return action.FromError[*models.WorkExperience](err)
	}
	experience, err := models.NewWorkExperience(actor, input.Company, input.Position, start, end, requestcontext.Now(ctx))
	if err != nil {
		return action.FromError[*models.WorkExperience](err)
	}
	experience.Description = input.Description

	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.WorkExperience] {
		return s.experiences.Add(txCtx, experience)
	})
}

// UpdateWorkExperience replaces the mutable state of an owned record.
func (s *Service) UpdateWorkExperience(ctx context.Context, actor domain.PersonID, experienceID uuid.UUID, input WorkExperienceInput) action.Response[*models.WorkExperience] {
	owned := s.fetchOwnedExperience(ctx, actor, experienceID)
	if !owned.Successful {
		return owned
	}
	start, end, err := input.Period.resolve()
	if err != nil {
		return action.FromError[*models.WorkExperience](err)
	}

	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.WorkExperience] {
		current := s.fetchOwnedExperience(txCtx, actor, experienceID)
		if !current.Successful {
			return current
		}
		experience := current.Result
		experience.Company = input.Company
		experience.Position = input.Position
		experience.Description = input.Description
		if err := experience.SetPeriod(start, end); err != nil {
			return action.FromError[*models.WorkExperience](err)
		}
		return s.experiences.Update(txCtx, experience)
	})
}

// DeleteWorkExperience soft-deletes an owned record.
func (s *Service) DeleteWorkExperience(ctx context.Context, actor domain.PersonID, experienceID uuid.UUID) action.Response[*models.WorkExperience] {
	owned := s.fetchOwnedExperience(ctx, actor, experienceID)
	if !owned.Successful {
		return owned
	}
	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.WorkExperience] {
		return s.experiences.Delete(txCtx, experienceID)
	})
}

// ListWorkExperiences returns the acting person's active work history.
func (s *Service) ListWorkExperiences(ctx context.Context, actor domain.PersonID) action.Response[[]*models.WorkExperience] {
	if actor.IsNil() {
		return action.Unauthorized[[]*models.WorkExperience]("authentication required")
	}
	all := s.experiences.List(ctx)
	if !all.Successful {
		return all
	}
	owned := make([]*models.WorkExperience, 0, len(all.Result))
	for _, w := range all.Result {
		if w.OwnedBy(actor) {
			owned = append(owned, w)
		}
	}
	return action.Success(owned)
}

func (s *Service) fetchOwnedExperience(ctx context.Context, actor domain.PersonID, experienceID uuid.UUID) action.Response[*models.WorkExperience] {
	if actor.IsNil() {
		return action.Unauthorized[*models.WorkExperience]("authentication required")
	}
	found := s.experiences.Get(ctx, experienceID)
	if !found.Successful {
		return found
	}
	if !found.Result.OwnedBy(actor) {
		return action.Forbidden[*models.WorkExperience]("record belongs to another member")
	}
	return found
}
