package models

import (
	"fmt"
	"time"

	"guild/internal/storage"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

// EducationKind discriminates the education variants. Shared fields live on
// Education itself; kind-specific fields are populated per variant and mapping
// code switches over the tag.
type EducationKind string

const (
	EducationDegree        EducationKind = "degree"
	EducationCertification EducationKind = "certification"
	EducationCourse        EducationKind = "course"
)

var educationKindNames = map[EducationKind]string{
	EducationDegree:        "Academic degree",
	EducationCertification: "Professional certification",
	EducationCourse:        "Course",
}

// DisplayName renders the human-readable form of a kind.
func (k EducationKind) DisplayName() string {
	if name, ok := educationKindNames[k]; ok {
		return name
	}
	return string(k)
}

// ParseEducationKind validates a kind received from a caller.
func ParseEducationKind(raw string) (EducationKind, error) {
	k := EducationKind(raw)
	if _, ok := educationKindNames[k]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown education kind %q", raw))
	}
	return k, nil
}

// Education is an academic-history record owned by a person. Start and End
// are partial dates; End is nil while the education is ongoing. The pair is
// validated through domain.DateRange at construction and on every date
// change.
type Education struct {
	storage.Record
	PersonID      domain.PersonID      `json:"person_id"`
	InstitutionID domain.InstitutionID `json:"institution_id"`
	Kind          EducationKind        `json:"kind"`
	Title         string               `json:"title"`
	Start         domain.PartialDate   `json:"start"`
	End           *domain.PartialDate  `json:"end,omitempty"`
	DocumentKey   string               `json:"document_key,omitempty"`

	// Kind-specific fields; which ones are meaningful depends on Kind.
	FieldOfStudy string `json:"field_of_study,omitempty"` // degree
	Level        string `json:"level,omitempty"`          // degree
	CredentialID string `json:"credential_id,omitempty"`  // certification
	Hours        int    `json:"hours,omitempty"`          // course
}

// NewEducation validates and constructs an education record.
func NewEducation(personID domain.PersonID, institutionID domain.InstitutionID, kind EducationKind,
	title string, start domain.PartialDate, end *domain.PartialDate, now time.Time) (*Education, error) {

	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "person ID is required")
	}
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if _, ok := educationKindNames[kind]; !ok {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown education kind %q", kind))
	}
	if _, err := domain.NewDateRange(start, end); err != nil {
		return nil, err
	}
	e := &Education{
		Record:        storage.NewRecord(now),
		PersonID:      personID,
		InstitutionID: institutionID,
		Kind:          kind,
		Title:         title,
		Start:         start,
	}
	if end != nil {
		v := *end
		e.End = &v
	}
	return e, nil
}

// Period returns the validated date range of the record.
func (e *Education) Period() domain.DateRange {
	r, _ := domain.NewDateRange(e.Start, e.End)
	return r
}

// SetPeriod replaces the dates after re-validating the pair.
func (e *Education) SetPeriod(start domain.PartialDate, end *domain.PartialDate) error {
	if _, err := domain.NewDateRange(start, end); err != nil {
		return err
	}
	e.Start = start
	e.End = nil
	if end != nil {
		v := *end
		e.End = &v
	}
	return nil
}

// OwnedBy reports whether the acting principal owns this record.
func (e *Education) OwnedBy(personID domain.PersonID) bool {
	return e.PersonID == personID
}

func (e *Education) Clone() *Education {
	clone := *e
	if e.End != nil {
		end := *e.End
		clone.End = &end
	}
	return &clone
}
