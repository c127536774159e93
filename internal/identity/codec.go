package identity

import (
	"strings"

	"github.com/google/uuid"

	"guild/internal/storage"
	"guild/pkg/domain"
)

// AccountCodec binds Account to the accounts table. Roles are a comma-joined
// list; role names never contain commas.
func AccountCodec() storage.Codec[*Account] {
	return storage.Codec[*Account]{
		Table: "accounts",
		Columns: []string{
			"id", "active", "created_at", "updated_at",
			"person_id", "username", "password_hash", "roles",
		},
		Values: func(a *Account) []any {
			return []any{
				a.ID, a.Active, a.CreatedAt, a.UpdatedAt,
				a.PersonID.UUID(), a.Username, a.PasswordHash, strings.Join(a.Roles, ","),
			}
		},
		Scan: func(row storage.RowScanner) (*Account, error) {
			var (
				a        Account
				personID uuid.UUID
				roles    string
			)
			err := row.Scan(
				&a.ID, &a.Active, &a.CreatedAt, &a.UpdatedAt,
				&personID, &a.Username, &a.PasswordHash, &roles,
			)
			if err != nil {
				return nil, err
			}
			a.PersonID = domain.PersonID(personID)
			if roles != "" {
				a.Roles = strings.Split(roles, ",")
			}
			return &a, nil
		},
	}
}
