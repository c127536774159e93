package service

import (
	"context"

	"guild/internal/member/models"
	"guild/pkg/action"
	"guild/pkg/domain"
	"guild/pkg/platform/tx"
	"guild/pkg/requestcontext"
)

// Approve transitions a pending membership to active. Deciding an already
// decided membership is a conflict, not an error to retry. The existence
// check runs before the transaction; the mutation runs inside it.
func (s *Service) Approve(ctx context.Context, memberID domain.MemberID) action.Response[*models.Member] {
	ctx, span := s.tracer.Start(ctx, "member.Approve")
	defer span.End()

	resp := s.decide(ctx, memberID, func(m *models.Member) {
		m.ApplyApproval(requestcontext.Now(ctx))
	})
	if resp.Successful {
		s.metrics.IncApproved()
		s.logger.InfoContext(ctx, "membership approved", "member_id", memberID.String())
	}
	return resp
}

// Reject transitions a pending membership to rejected with a reviewer note.
func (s *Service) Reject(ctx context.Context, memberID domain.MemberID, note string) action.Response[*models.Member] {
	ctx, span := s.tracer.Start(ctx, "member.Reject")
	defer span.End()

	resp := s.decide(ctx, memberID, func(m *models.Member) {
		m.ApplyRejection(note, requestcontext.Now(ctx))
	})
	if resp.Successful {
		s.metrics.IncRejected()
		s.logger.InfoContext(ctx, "membership rejected", "member_id", memberID.String())
	}
	return resp
}

func (s *Service) decide(ctx context.Context, memberID domain.MemberID, apply func(*models.Member)) action.Response[*models.Member] {
	if memberID.IsNil() {
		return action.Invalid[*models.Member]("member ID is required", nil)
	}

	found := s.members.Get(ctx, memberID.UUID())
	if !found.Successful {
		return found
	}
	if err := found.Result.CanDecide(); err != nil {
		return action.FromError[*models.Member](err)
	}

	return tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*models.Member] {
		// Re-read inside the transaction so the decision applies to
		// current state.
		current := s.members.Get(txCtx, memberID.UUID())
		if !current.Successful {
			return current
		}
		member := current.Result
		if err := member.CanDecide(); err != nil {
			return action.FromError[*models.Member](err)
		}
		apply(member)
		return s.members.Update(txCtx, member)
	})
}

// GetMember returns a membership record with its decision state. By-id reads
// include inactive records, matching the repository default.
func (s *Service) GetMember(ctx context.Context, memberID domain.MemberID) action.Response[*models.Member] {
	if memberID.IsNil() {
		return action.Invalid[*models.Member]("member ID is required", nil)
	}
	return s.members.Get(ctx, memberID.UUID())
}

// ListMembers returns active membership records.
func (s *Service) ListMembers(ctx context.Context) action.Response[[]*models.Member] {
	return s.members.List(ctx)
}

// GetPerson returns a person profile.
func (s *Service) GetPerson(ctx context.Context, personID domain.PersonID) action.Response[*models.Person] {
	if personID.IsNil() {
		return action.Invalid[*models.Person]("person ID is required", nil)
	}
	return s.people.Get(ctx, personID.UUID())
}
