package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func newPendingMember(t *testing.T) *Member {
	t.Helper()
	member, err := NewMember(domain.PersonID(uuid.New()), "M-2026-ABCDEF01", testNow)
	require.NoError(t, err)
	return member
}

func TestNewMember(t *testing.T) {
	member := newPendingMember(t)
	assert.Equal(t, StatusPending, member.Status)
	assert.Equal(t, testNow, member.AppliedAt)
	assert.Nil(t, member.DecidedAt)
	assert.True(t, member.IsActive())
}

func TestNewMemberValidation(t *testing.T) {
	_, err := NewMember(domain.PersonID{}, "M-2026-ABCDEF01", testNow)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = NewMember(domain.PersonID(uuid.New()), "", testNow)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCanDecide(t *testing.T) {
	member := newPendingMember(t)
	require.NoError(t, member.CanDecide())

	decidedAt := testNow.Add(48 * time.Hour)
	member.ApplyApproval(decidedAt)
	assert.Equal(t, StatusActive, member.Status)
	require.NotNil(t, member.DecidedAt)
	assert.Equal(t, decidedAt, *member.DecidedAt)

	err := member.CanDecide()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	assert.Contains(t, err.Error(), "Active member")
}

func TestApplyRejection(t *testing.T) {
	member := newPendingMember(t)
	member.ApplyRejection("incomplete application", testNow)
	assert.Equal(t, StatusRejected, member.Status)
	assert.Equal(t, "incomplete application", member.DecisionNote)
	require.Error(t, member.CanDecide())
}

func TestParseMembershipStatus(t *testing.T) {
	for _, raw := range []string{"pending", "active", "rejected", "suspended"} {
		status, err := ParseMembershipStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, string(status))
		assert.NotEqual(t, raw, status.DisplayName())
	}

	_, err := ParseMembershipStatus("cancelled")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestMemberCloneIsIndependent(t *testing.T) {
	member := newPendingMember(t)
	member.ApplyApproval(testNow)

	clone := member.Clone()
	*clone.DecidedAt = testNow.Add(time.Hour)
	clone.Status = StatusSuspended

	assert.Equal(t, testNow, *member.DecidedAt)
	assert.Equal(t, StatusActive, member.Status)
}
