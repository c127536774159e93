package models

import (
	"fmt"
	"time"

	"guild/internal/storage"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

// MembershipStatus is the lifecycle state of a membership record.
type MembershipStatus string

const (
	StatusPending   MembershipStatus = "pending"
	StatusActive    MembershipStatus = "active"
	StatusRejected  MembershipStatus = "rejected"
	StatusSuspended MembershipStatus = "suspended"
)

// statusDisplayNames is configuration data loaded once at process start, not
// mutable state. Rendering and parsing go through the functions below instead
// of scattering string literals.
var statusDisplayNames = map[MembershipStatus]string{
	StatusPending:   "Pending approval",
	StatusActive:    "Active member",
	StatusRejected:  "Rejected",
	StatusSuspended: "Suspended",
}

// DisplayName renders the human-readable form of a status.
func (s MembershipStatus) DisplayName() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// ParseMembershipStatus validates a status received from a caller.
func ParseMembershipStatus(raw string) (MembershipStatus, error) {
	s := MembershipStatus(raw)
	if _, ok := statusDisplayNames[s]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown membership status %q", raw))
	}
	return s, nil
}

// Role names granted through the credential manager.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Member is the membership record owned by a person profile. A new
// registration starts pending; an administrator approves or rejects it.
type Member struct {
	storage.Record
	PersonID     domain.PersonID  `json:"person_id"`
	Number       string           `json:"number"`
	Status       MembershipStatus `json:"status"`
	AppliedAt    time.Time        `json:"applied_at"`
	DecidedAt    *time.Time       `json:"decided_at,omitempty"`
	DecisionNote string           `json:"decision_note,omitempty"`
}

// NewMember constructs a pending membership record for a person.
func NewMember(personID domain.PersonID, number string, now time.Time) (*Member, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "person ID is required")
	}
	if number == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "membership number is required")
	}
	return &Member{
		Record:    storage.NewRecord(now),
		PersonID:  personID,
		Number:    number,
		Status:    StatusPending,
		AppliedAt: now,
	}, nil
}

// MemberID returns the typed identity of the record.
func (m *Member) MemberID() domain.MemberID { return domain.MemberID(m.ID) }

// CanDecide checks that the membership is still pending a decision.
func (m *Member) CanDecide() error {
	if m.Status != StatusPending {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("membership is already %s", m.Status.DisplayName()))
	}
	return nil
}

// ApplyApproval transitions pending → active. Call CanDecide first.
func (m *Member) ApplyApproval(now time.Time) {
	m.Status = StatusActive
	m.DecidedAt = &now
	m.Touch(now)
}

// ApplyRejection transitions pending → rejected with a reviewer note.
func (m *Member) ApplyRejection(note string, now time.Time) {
	m.Status = StatusRejected
	m.DecisionNote = note
	m.DecidedAt = &now
	m.Touch(now)
}

func (m *Member) Clone() *Member {
	clone := *m
	if m.DecidedAt != nil {
		decided := *m.DecidedAt
		clone.DecidedAt = &decided
	}
	return &clone
}
