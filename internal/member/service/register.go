package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"guild/internal/member/models"
	"guild/pkg/action"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
	"guild/pkg/platform/tx"
	"guild/pkg/requestcontext"
)

// RegisterInput is the registration payload, already decoded by the transport
// layer.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

// RegistrationResult is the composed creation DTO returned on commit.
type RegistrationResult struct {
	PersonID  domain.PersonID  `json:"person_id"`
	MemberID  domain.MemberID  `json:"member_id"`
	AccountID domain.AccountID `json:"account_id"`
	Number    string           `json:"number"`
	Status    string           `json:"status"`
}

// Register runs the registration workflow: structural validation and the
// uniqueness check happen before any transaction is opened, so the common
// failure paths never touch one. The mutating steps — person profile,
// pending membership record, credential account, default role grant — run
// inside a single transaction and roll back together on the first failure.
//
// The workflow is deliberately not idempotent: repeating a committed
// registration fails the uniqueness check with a conflict.
func (s *Service) Register(ctx context.Context, input RegisterInput) action.Response[*RegistrationResult] {
	ctx, span := s.tracer.Start(ctx, "member.Register")
	defer span.End()
	start := time.Now()
	defer s.metrics.ObserveRegister(start)

	if errs := validateRegisterInput(input); len(errs) > 0 {
		return action.Invalid[*RegistrationResult]("registration payload is invalid", errs)
	}

	if resp := s.checkRegistrationUnique(ctx, input); !resp.Successful {
		return resp
	}

	now := requestcontext.Now(ctx)
	resp := tx.Scope(ctx, s.tx, func(txCtx context.Context) action.Response[*RegistrationResult] {
		person, err := models.NewPerson(input.FirstName, input.LastName, input.Email, now)
		if err != nil {
			return action.FromError[*RegistrationResult](err)
		}
		if created := s.people.Add(txCtx, person); !created.Successful {
			return action.ChangeType[*RegistrationResult](created)
		}

		member, err := models.NewMember(person.PersonID(), newMembershipNumber(person, now), now)
		if err != nil {
			return action.FromError[*RegistrationResult](err)
		}
		if created := s.members.Add(txCtx, member); !created.Successful {
			return action.ChangeType[*RegistrationResult](created)
		}

		account, err := s.identity.CreateAccount(txCtx, person.PersonID(), input.Username, input.Password)
		if err != nil {
			return action.FromError[*RegistrationResult](err)
		}

		if err := s.identity.AssignRole(txCtx, account.AccountID(), models.RoleMember); err != nil {
			return action.Failure[*RegistrationResult](
				fmt.Sprintf("role assignment failed: %s", err.Error()))
		}

		return action.SuccessMessage(&RegistrationResult{
			PersonID:  person.PersonID(),
			MemberID:  member.MemberID(),
			AccountID: account.AccountID(),
			Number:    member.Number,
			Status:    string(member.Status),
		}, "registration submitted")
	})

	if resp.Successful {
		s.metrics.IncCommitted()
		s.logger.InfoContext(ctx, "registration committed",
			"member_id", resp.Result.MemberID.String(),
			"number", resp.Result.Number,
		)
	} else {
		s.metrics.IncRolledBack()
		s.logger.WarnContext(ctx, "registration rolled back",
			"code", string(resp.Code),
			"reason", resp.Message,
		)
	}
	return resp
}

func validateRegisterInput(input RegisterInput) []string {
	var errs []string
	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, "first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, "last name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		errs = append(errs, "a valid email is required")
	}
	if username := strings.TrimSpace(input.Username); username == "" {
		errs = append(errs, "username is required")
	} else if len(username) > 64 {
		errs = append(errs, "username must be 64 characters or less")
	}
	if len(input.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// checkRegistrationUnique rejects a registration whose email or username is
// already taken by an active record. Runs before the transaction opens.
func (s *Service) checkRegistrationUnique(ctx context.Context, input RegisterInput) action.Response[*RegistrationResult] {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	existing := s.people.First(ctx, func(p *models.Person) bool {
		return p.IsActive() && p.Email == email
	})
	if existing.Successful {
		return action.Conflict[*RegistrationResult]("email is already registered")
	}
	if existing.Code != action.CodeNotFound {
		return action.ChangeType[*RegistrationResult](existing)
	}

	if _, err := s.identity.FindByUsername(ctx, input.Username); err == nil {
		return action.Conflict[*RegistrationResult]("username is already taken")
	} else if !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return action.FromError[*RegistrationResult](err)
	}

	return action.Success[*RegistrationResult](nil)
}

// newMembershipNumber derives a human-referenceable membership number. Not a
// uniqueness mechanism; the record id is the identity.
func newMembershipNumber(person *models.Person, now time.Time) string {
	return fmt.Sprintf("M-%d-%s", now.Year(), strings.ToUpper(person.ID.String()[:8]))
}
