package models

import (
	"time"

	"guild/internal/storage"
	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

// WorkExperience is a work-history record owned by a person. Like Education
// it stores the two partial dates directly and validates the pair through
// domain.DateRange.
type WorkExperience struct {
	storage.Record
	PersonID    domain.PersonID     `json:"person_id"`
	Company     string              `json:"company"`
	Position    string              `json:"position"`
	Start       domain.PartialDate  `json:"start"`
	End         *domain.PartialDate `json:"end,omitempty"`
	Description string              `json:"description,omitempty"`
}

// NewWorkExperience validates and constructs a work-experience record.
func NewWorkExperience(personID domain.PersonID, company, position string,
	start domain.PartialDate, end *domain.PartialDate, now time.Time) (*WorkExperience, error) {

	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "person ID is required")
	}
	if company == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "company is required")
	}
	if position == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "position is required")
	}
	if _, err := domain.NewDateRange(start, end); err != nil {
		return nil, err
	}
	w := &WorkExperience{
		Record:   storage.NewRecord(now),
		PersonID: personID,
		Company:  company,
		Position: position,
		Start:    start,
	}
	if end != nil {
		v := *end
		w.End = &v
	}
	return w, nil
}

// Period returns the validated date range of the record.
func (w *WorkExperience) Period() domain.DateRange {
	r, _ := domain.NewDateRange(w.Start, w.End)
	return r
}

// SetPeriod replaces the dates after re-validating the pair.
func (w *WorkExperience) SetPeriod(start domain.PartialDate, end *domain.PartialDate) error {
	if _, err := domain.NewDateRange(start, end); err != nil {
		return err
	}
	w.Start = start
	w.End = nil
	if end != nil {
		v := *end
		w.End = &v
	}
	return nil
}

// DurationMonths derives the approximate tenure in months, measuring ongoing
// positions against the supplied now.
func (w *WorkExperience) DurationMonths(now time.Time) int {
	return w.Period().ApproximateDurationMonths(now)
}

// OwnedBy reports whether the acting principal owns this record.
func (w *WorkExperience) OwnedBy(personID domain.PersonID) bool {
	return w.PersonID == personID
}

func (w *WorkExperience) Clone() *WorkExperience {
	clone := *w
	if w.End != nil {
		end := *w.End
		clone.End = &end
	}
	return &clone
}
