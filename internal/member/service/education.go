package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"guild/internal/member/models"
	"guild/pkg/action"
	"guild/pkg/domain"
	"guild/pkg/platform/tx"
	"guild/pkg/requestcontext"
)

// EducationInput is the create/update payload for an education record.
type EducationInput struct {
	InstitutionID domain.InstitutionID
	Kind          models.EducationKind
	Title         string
	Period        PeriodInput

	// Kind-specific fields; which ones apply depends on Kind.
	FieldOfStudy string
	Level        string
	CredentialID string
	Hours        int
}

// DocumentInput is an uploaded supporting document.
type DocumentInput struct {
	ContentType string
	Body        io.Reader
}

// AddEducation creates an education record owned by the acting person.
func (s *Service) AddEducation(ctx context.Context, actor domain.PersonID, input EducationInput) action.Response[*models.Education] {
	if actor.IsNil() {
		return action.Unauthorized[*models.Education]("authentication required")
	}
	start, end, err := input.Period.resolve()
	if err != nil {
		return action.FromError[*models.Education](err)
	}

	now := requestcontext.Now(ctx)
	education, err := models.NewEducation(actor, input.InstitutionID, input.Kind, input.Title, start, end, now)
	if err != nil {
		return action.FromError[*models.Education](err)
	}
	applyKindFields(education, input)

	if !input.InstitutionID.IsNil() {
		if found := s.institutions.GetActive(ctx, input.InstitutionID.UUID()); !found.Successful {
			return action.ChangeType[*models.Education](found)
		}
	}

	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Education] {
		return s.educations.Add(txCtx, education)
	})
}

// UpdateEducation replaces the mutable state of an education record. Only the
// owner may mutate; a non-owner gets Forbidden even though that confirms the
// record exists (preserved behavior, see DESIGN.md).
func (s *Service) UpdateEducation(ctx context.Context, actor domain.PersonID, educationID uuid.UUID, input EducationInput) action.Response[*models.Education] {
	owned := s.fetchOwnedEducation(ctx, actor, educationID)
	if !owned.Successful {
		return owned
	}
	start, end, err := input.Period.resolve()
	if err != nil {
		return action.FromError[*models.Education](err)
	}

	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Education] {
		current := s.fetchOwnedEducation(txCtx, actor, educationID)
		if !current.Successful {
			return current
		}
		education := current.Result
		education.Title = input.Title
		education.Kind = input.Kind
		education.InstitutionID = input.InstitutionID
		if err := education.SetPeriod(start, end); err != nil {
			return action.FromError[*models.Education](err)
		}
		applyKindFields(education, input)
		return s.educations.Update(txCtx, education)
	})
}

// ReplaceEducationDocument swaps the supporting document of an education
// record. The new object is uploaded before the transaction; a failed persist
// removes it again, and the superseded object is removed only after commit.
func (s *Service) ReplaceEducationDocument(ctx context.Context, actor domain.PersonID, educationID uuid.UUID, doc DocumentInput) action.Response[*models.Education] {
	if s.blobs == nil {
		return action.Failure[*models.Education]("document storage is not configured")
	}
	owned := s.fetchOwnedEducation(ctx, actor, educationID)
	if !owned.Successful {
		return owned
	}
	previousKey := owned.Result.DocumentKey

	newKey := fmt.Sprintf("education/%s/%s", educationID, uuid.New())
	if err := s.blobs.Upload(ctx, newKey, doc.ContentType, doc.Body); err != nil {
		return action.Failure[*models.Education](fmt.Sprintf("document upload failed: %s", err.Error()))
	}

	resp := tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Education] {
		current := s.fetchOwnedEducation(txCtx, actor, educationID)
		if !current.Successful {
			return current
		}
		education := current.Result
		education.DocumentKey = newKey
		return s.educations.Update(txCtx, education)
	})

	if !resp.Successful {
		if err := s.blobs.Delete(ctx, newKey); err != nil {
			s.logger.ErrorContext(ctx, "failed to remove orphaned document", "key", newKey, "error", err)
		}
		return resp
	}
	if previousKey != "" {
		// Best effort: the record already points at the new document.
		if err := s.blobs.Delete(ctx, previousKey); err != nil {
			s.logger.WarnContext(ctx, "failed to remove superseded document", "key", previousKey, "error", err)
		}
	}
	return resp
}

// DeleteEducation soft-deletes an owned education record.
func (s *Service) DeleteEducation(ctx context.Context, actor domain.PersonID, educationID uuid.UUID) action.Response[*models.Education] {
	owned := s.fetchOwnedEducation(ctx, actor, educationID)
	if !owned.Successful {
		return owned
	}
	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Education] {
		return s.educations.Delete(txCtx, educationID)
	})
}

// ListEducations returns the acting person's active education records.
func (s *Service) ListEducations(ctx context.Context, actor domain.PersonID) action.Response[[]*models.Education] {
	if actor.IsNil() {
		return action.Unauthorized[[]*models.Education]("authentication required")
	}
	all := s.educations.List(ctx)
	if !all.Successful {
		return all
	}
	owned := make([]*models.Education, 0, len(all.Result))
	for _, e := range all.Result {
		if e.OwnedBy(actor) {
			owned = append(owned, e)
		}
	}
	return action.Success(owned)
}

// fetchOwnedEducation loads a record (inactive included, matching the by-id
// default) and enforces ownership. The ownership failure is Forbidden, not
// NotFound.
func (s *Service) fetchOwnedEducation(ctx context.Context, actor domain.PersonID, educationID uuid.UUID) action.Response[*models.Education] {
	if actor.IsNil() {
		return action.Unauthorized[*models.Education]("authentication required")
	}
	found := s.educations.Get(ctx, educationID)
	if !found.Successful {
		return found
	}
	if !found.Result.OwnedBy(actor) {
		return action.Forbidden[*models.Education]("record belongs to another member")
	}
	return found
}

func applyKindFields(education *models.Education, input EducationInput) {
	// Reset all variant fields, then populate the ones the tag selects.
	education.FieldOfStudy = ""
	education.Level = ""
	education.CredentialID = ""
	education.Hours = 0
	switch input.Kind {
	case models.EducationDegree:
		education.FieldOfStudy = input.FieldOfStudy
		education.Level = input.Level
	case models.EducationCertification:
		education.CredentialID = input.CredentialID
	case models.EducationCourse:
		education.Hours = input.Hours
	}
}
