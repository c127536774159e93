package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guild/internal/storage"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

func testAccount() *Account {
	return &Account{
		Record:   storage.NewRecord(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		PersonID: domain.PersonID(uuid.New()),
		Username: "ada",
		Roles:    []string{"member", "admin"},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("key"), "guild-test", time.Hour)
	account := testAccount()

	token, err := svc.IssueAccessToken(account, time.Now())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.PersonID.String(), claims.PersonID)
	assert.Equal(t, []string{"member", "admin"}, claims.Roles)
	assert.Equal(t, "ada", claims.Subject)

	principal, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, account.PersonID, principal)
}

func TestValidateTokenRejections(t *testing.T) {
	svc := NewTokenService([]byte("key"), "guild-test", time.Hour)
	account := testAccount()

	t.Run("expired", func(t *testing.T) {
		token, err := svc.IssueAccessToken(account, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := svc.IssueAccessToken(account, time.Now())
		require.NoError(t, err)
		other := NewTokenService([]byte("other-key"), "guild-test", time.Hour)
		_, err = other.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
