// Package models holds the membership aggregate types: person profiles,
// membership records, academic history, work experience, and institutions.
// All persisted types embed storage.Record and are soft-deletable.
package models

import (
	"strings"
	"time"

	"guild/internal/storage"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

// Person is the profile entity a membership record and credential account
// hang off. It is created inside the registration transaction.
type Person struct {
	storage.Record
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// NewPerson validates and constructs a person profile.
func NewPerson(firstName, lastName, email string, now time.Time) (*Person, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(strings.ToLower(email))

	if firstName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "first name is required")
	}
	if lastName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "last name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	return &Person{
		Record:    storage.NewRecord(now),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}, nil
}

// PersonID returns the typed identity of the profile.
func (p *Person) PersonID() domain.PersonID { return domain.PersonID(p.ID) }

// FullName renders "First Last" for display.
func (p *Person) FullName() string { return p.FirstName + " " + p.LastName }

func (p *Person) Clone() *Person {
	clone := *p
	return &clone
}
