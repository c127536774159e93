package identity

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"guild/internal/storage"
	"guild/pkg/action"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
	"guild/pkg/requestcontext"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 64
	resetTokenTTL     = time.Hour
)

// Service is the repository-backed Manager. Because accounts persist through
// the generic repository, account and role writes inside a workflow share its
// transaction and roll back with it.
type Service struct {
	accounts   *storage.Repository[*Account]
	signingKey []byte
}

// NewService builds a Manager over an account repository. signingKey signs
// password-reset tokens.
func NewService(accounts *storage.Repository[*Account], signingKey []byte) *Service {
	return &Service{accounts: accounts, signingKey: signingKey}
}

func (s *Service) CreateAccount(ctx context.Context, personID domain.PersonID, username, password string) (*Account, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "person ID is required")
	}
	if username == "" || len(username) > maxUsernameLength {
		return nil, dErrors.New(dErrors.CodeValidation, "username is required and must be 64 characters or less")
	}
	if len(password) < minPasswordLength {
		return nil, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}

	if resp := s.findByUsername(ctx, username); resp.Successful {
		return nil, dErrors.New(dErrors.CodeConflict, "username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	account := &Account{
		Record:       storage.NewRecord(requestcontext.Now(ctx)),
		PersonID:     personID,
		Username:     username,
		PasswordHash: hash,
	}
	if resp := s.accounts.Add(ctx, account); !resp.Successful {
		return nil, dErrors.New(dErrors.CodeInternal, resp.Message)
	}
	return account, nil
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*Account, error) {
	resp := s.findByUsername(ctx, strings.TrimSpace(strings.ToLower(username)))
	if !resp.Successful {
		if resp.Code == action.CodeNotFound {
			return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return nil, dErrors.New(dErrors.CodeInternal, resp.Message)
	}
	return resp.Result, nil
}

func (s *Service) findByUsername(ctx context.Context, username string) action.Response[*Account] {
	return s.accounts.First(ctx, func(a *Account) bool {
		return a.IsActive() && a.Username == username
	})
}

func (s *Service) CheckPassword(ctx context.Context, username, password string) (*Account, error) {
	account, err := s.FindByUsername(ctx, username)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			// Same error for unknown user and wrong password.
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	return account, nil
}

func (s *Service) AssignRole(ctx context.Context, accountID domain.AccountID, role string) error {
	return s.mutateRoles(ctx, accountID, func(account *Account) {
		if !account.HasRole(role) {
			account.Roles = append(account.Roles, role)
		}
	})
}

func (s *Service) RemoveRole(ctx context.Context, accountID domain.AccountID, role string) error {
	return s.mutateRoles(ctx, accountID, func(account *Account) {
		kept := account.Roles[:0]
		for _, r := range account.Roles {
			if r != role {
				kept = append(kept, r)
			}
		}
		account.Roles = kept
	})
}

func (s *Service) mutateRoles(ctx context.Context, accountID domain.AccountID, mutate func(*Account)) error {
	found := s.accounts.Get(ctx, accountID.UUID())
	if !found.Successful {
		if found.Code == action.CodeNotFound {
			return dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return dErrors.New(dErrors.CodeInternal, found.Message)
	}
	account := found.Result
	mutate(account)
	if resp := s.accounts.Update(ctx, account); !resp.Successful {
		return dErrors.New(dErrors.CodeInternal, resp.Message)
	}
	return nil
}

func (s *Service) GenerateResetToken(ctx context.Context, username string, now time.Time) (string, error) {
	account, err := s.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	claims := jwt.RegisteredClaims{
		Subject:   account.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign reset token")
	}
	return token, nil
}
