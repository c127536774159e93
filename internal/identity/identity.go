// Package identity is the credential-manager seam: account creation, password
// checks, role grants, and reset tokens. Workflows consume the Manager
// interface; the default implementation stores accounts through the generic
// repository so credential writes join the caller's transaction.
package identity

import (
	"context"
	"time"

	"guild/internal/storage"
	"guild/pkg/domain"
)

// Account is a credential entity referencing a person profile. Passwords are
// stored as bcrypt hashes only.
type Account struct {
	storage.Record
	PersonID     domain.PersonID `json:"person_id"`
	Username     string          `json:"username"`
	PasswordHash []byte          `json:"-"`
	Roles        []string        `json:"roles"`
}

// AccountID returns the typed identity of the account.
func (a *Account) AccountID() domain.AccountID { return domain.AccountID(a.ID) }

// HasRole reports whether the account holds the given role.
func (a *Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a *Account) Clone() *Account {
	clone := *a
	clone.PasswordHash = append([]byte(nil), a.PasswordHash...)
	clone.Roles = append([]string(nil), a.Roles...)
	return &clone
}

// Manager is the external credential-manager contract workflows depend on.
// Implementations return coded domain errors; callers translate them into
// response envelopes.
//
//go:generate mockgen -source=identity.go -destination=mocks/mocks.go -package=mocks Manager
type Manager interface {
	CreateAccount(ctx context.Context, personID domain.PersonID, username, password string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	CheckPassword(ctx context.Context, username, password string) (*Account, error)
	AssignRole(ctx context.Context, accountID domain.AccountID, role string) error
	RemoveRole(ctx context.Context, accountID domain.AccountID, role string) error
	GenerateResetToken(ctx context.Context, username string, now time.Time) (string, error)
}
