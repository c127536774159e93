// Package domain holds identifier types and the date value objects shared by
// every layer. Typed IDs keep a person ID from being passed where a member ID
// is expected; the compiler enforces the distinction.
package domain

import (
	"github.com/google/uuid"

	dErrors "guild/pkg/domain-errors"
)

type (
	// PersonID identifies a person profile.
	PersonID uuid.UUID
	// MemberID identifies a membership record.
	MemberID uuid.UUID
	// AccountID identifies a credential account.
	AccountID uuid.UUID
	// InstitutionID identifies an academic or professional institution.
	InstitutionID uuid.UUID
)

func (id PersonID) String() string      { return uuid.UUID(id).String() }
func (id MemberID) String() string      { return uuid.UUID(id).String() }
func (id AccountID) String() string     { return uuid.UUID(id).String() }
func (id InstitutionID) String() string { return uuid.UUID(id).String() }

func (id PersonID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id MemberID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id AccountID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id InstitutionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id PersonID) UUID() uuid.UUID      { return uuid.UUID(id) }
func (id MemberID) UUID() uuid.UUID      { return uuid.UUID(id) }
func (id AccountID) UUID() uuid.UUID     { return uuid.UUID(id) }
func (id InstitutionID) UUID() uuid.UUID { return uuid.UUID(id) }

func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" ID is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, kind+" ID is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" ID cannot be the nil UUID")
	}
	return parsed, nil
}

// ParsePersonID parses and validates a person ID from its string form.
func ParsePersonID(raw string) (PersonID, error) {
	parsed, err := parseUUID(raw, "person")
	return PersonID(parsed), err
}

// ParseMemberID parses and validates a member ID from its string form.
func ParseMemberID(raw string) (MemberID, error) {
	parsed, err := parseUUID(raw, "member")
	return MemberID(parsed), err
}

// ParseAccountID parses and validates an account ID from its string form.
func ParseAccountID(raw string) (AccountID, error) {
	parsed, err := parseUUID(raw, "account")
	return AccountID(parsed), err
}

// ParseInstitutionID parses and validates an institution ID from its string form.
func ParseInstitutionID(raw string) (InstitutionID, error) {
	parsed, err := parseUUID(raw, "institution")
	return InstitutionID(parsed), err
}
