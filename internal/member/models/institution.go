package models

import (
	"strings"
	"time"

	"guild/internal/storage"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

// Institution is an academic or professional institution referenced by
// education records.
type Institution struct {
	storage.Record
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Website string `json:"website,omitempty"`
}

// NewInstitution validates and constructs an institution.
func NewInstitution(name, country, website string, now time.Time) (*Institution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "institution name is required")
	}
	if len(name) > 256 {
		return nil, dErrors.New(dErrors.CodeValidation, "institution name must be 256 characters or less")
	}
	return &Institution{
		Record:  storage.NewRecord(now),
		Name:    name,
		Country: country,
		Website: website,
	}, nil
}

// InstitutionID returns the typed identity of the record.
func (i *Institution) InstitutionID() domain.InstitutionID { return domain.InstitutionID(i.ID) }

func (i *Institution) Clone() *Institution {
	clone := *i
	return &clone
}
