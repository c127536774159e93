package domain

import (
	"fmt"
	"time"

	dErrors "guild/pkg/domain-errors"
)

// DateRange is an interval between two partial dates, or a partial date and
// "ongoing" when the end is absent. Education and work-experience records
// store the two partial dates directly; they construct a DateRange whenever
// the pair needs validation or duration math, so the rules live in one place.
type DateRange struct {
	start PartialDate
	end   *PartialDate
}

// NewDateRange constructs a range. A nil end means the range is ongoing.
// An end that sorts before the start is rejected; an end equal to the start
// is a valid zero-length range.
func NewDateRange(start PartialDate, end *PartialDate) (DateRange, error) {
	if start.IsZero() {
		return DateRange{}, dErrors.New(dErrors.CodeValidation, "start date is required")
	}
	if end != nil && end.Compare(start) < 0 {
		return DateRange{}, dErrors.New(dErrors.CodeValidation, "end date cannot be before start date")
	}
	r := DateRange{start: start}
	if end != nil {
		e := *end
		r.end = &e
	}
	return r, nil
}

// Start returns the start of the range.
func (r DateRange) Start() PartialDate { return r.start }

// End returns the end of the range and whether one is set.
func (r DateRange) End() (PartialDate, bool) {
	if r.end == nil {
		return PartialDate{}, false
	}
	return *r.end, true
}

// IsCurrent reports whether the range is ongoing.
func (r DateRange) IsCurrent() bool { return r.end == nil }

// ApproximateDurationMonths returns the whole-month difference between the
// approximated end (or now, when ongoing) and the approximated start, floored
// at zero so a range starting in the future never yields a negative duration.
func (r DateRange) ApproximateDurationMonths(now time.Time) int {
	end := now.UTC()
	if r.end != nil {
		end = r.end.Approximate()
	}
	start := r.start.Approximate()
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	return max(months, 0)
}

// String renders "{start} - {end}", with "Actual" standing in for an ongoing
// end.
func (r DateRange) String() string {
	if r.end == nil {
		return fmt.Sprintf("%s - Actual", r.start)
	}
	return fmt.Sprintf("%s - %s", r.start, r.end)
}
