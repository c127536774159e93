package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

// Claims are the access-token claims. PersonID is the acting principal every
// ownership check keys on; Roles gate the admin surface.
type Claims struct {
	PersonID  string   `json:"person_id"`
	AccountID string   `json:"account_id"`
	Roles     []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 access tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewTokenService builds a token service. ttl bounds access-token lifetime.
func NewTokenService(signingKey []byte, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{signingKey: signingKey, issuer: issuer, ttl: ttl}
}

// IssueAccessToken signs an access token for an authenticated account.
func (s *TokenService) IssueAccessToken(account *Account, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		PersonID:  account.PersonID.String(),
		AccountID: account.AccountID().String(),
		Roles:     account.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Username,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign access token")
	}
	return signed, nil
}

// ValidateToken parses and verifies an access token and returns its claims.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// Principal resolves the typed person ID the token acts as.
func (c *Claims) Principal() (domain.PersonID, error) {
	return domain.ParsePersonID(c.PersonID)
}
