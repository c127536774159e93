package domain

import (
	"encoding/json"
	"fmt"
	"time"

	dErrors "guild/pkg/domain-errors"
)

// Year bounds accepted for academic and work history dates.
const (
	MinPartialDateYear = 1900
	MaxPartialDateYear = 2100
)

// PartialDate is a calendar date known to year, year+month, or full
// year+month+day precision. The zero month/day mean "unknown", never January
// or the 1st. Values are immutable after construction; the only way to obtain
// one is through a constructor, which validates its invariants.
//
// Ordering: (year, month-or-0, day-or-0). A bare year sorts before the same
// year with any month, and a year+month before the same month with any day.
// The missing component compares as lower than every concrete value, which is
// a comparison artifact and not equality with January / the 1st.
type PartialDate struct {
	year  int
	month int
	day   int
}

// NewYear constructs a year-only partial date.
func NewYear(year int) (PartialDate, error) {
	return newPartialDate(year, 0, 0)
}

// NewYearMonth constructs a partial date with year and month precision.
func NewYearMonth(year, month int) (PartialDate, error) {
	if month == 0 {
		return PartialDate{}, dErrors.New(dErrors.CodeValidation, "month is required")
	}
	return newPartialDate(year, month, 0)
}

// NewDate constructs a complete partial date.
func NewDate(year, month, day int) (PartialDate, error) {
	if month == 0 {
		return PartialDate{}, dErrors.New(dErrors.CodeValidation, "month is required")
	}
	if day == 0 {
		return PartialDate{}, dErrors.New(dErrors.CodeValidation, "day is required")
	}
	return newPartialDate(year, month, day)
}

// PartialDateFromFields builds a partial date from the discrete nullable
// fields a DTO mapper works with. A day without a month is rejected.
func PartialDateFromFields(year int, month, day *int) (PartialDate, error) {
	switch {
	case month == nil && day != nil:
		return PartialDate{}, dErrors.New(dErrors.CodeValidation, "day cannot be set without a month")
	case month == nil:
		return NewYear(year)
	case day == nil:
		return NewYearMonth(year, *month)
	default:
		return NewDate(year, *month, *day)
	}
}

func newPartialDate(year, month, day int) (PartialDate, error) {
	if year < MinPartialDateYear || year > MaxPartialDateYear {
		return PartialDate{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("year must be between %d and %d", MinPartialDateYear, MaxPartialDateYear))
	}
	if month != 0 && (month < 1 || month > 12) {
		return PartialDate{}, dErrors.New(dErrors.CodeValidation, "month must be between 1 and 12")
	}
	if day != 0 {
		if day < 1 || day > 31 {
			return PartialDate{}, dErrors.New(dErrors.CodeValidation, "day must be between 1 and 31")
		}
		// The days-in-month check uses the actual year, so 29/02 is valid
		// in leap years only.
		if day > daysInMonth(year, month) {
			return PartialDate{}, dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("month %d of %d has only %d days", month, year, daysInMonth(year, month)))
		}
	}
	return PartialDate{year: year, month: month, day: day}, nil
}

func daysInMonth(year, month int) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Year returns the year component.
func (d PartialDate) Year() int { return d.year }

// Month returns the month component and whether it is known.
func (d PartialDate) Month() (int, bool) { return d.month, d.month != 0 }

// Day returns the day component and whether it is known.
func (d PartialDate) Day() (int, bool) { return d.day, d.day != 0 }

// IsComplete reports whether both month and day are known.
func (d PartialDate) IsComplete() bool { return d.month != 0 && d.day != 0 }

// IsZero reports whether d is the uninitialized zero value, which no
// constructor produces.
func (d PartialDate) IsZero() bool { return d.year == 0 }

// Compare returns a negative, zero, or positive number as d sorts before,
// equal to, or after other. Missing components compare as 0.
func (d PartialDate) Compare(other PartialDate) int {
	if c := compareInt(d.year, other.year); c != 0 {
		return c
	}
	if c := compareInt(d.month, other.month); c != 0 {
		return c
	}
	return compareInt(d.day, other.day)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d sorts strictly before other.
func (d PartialDate) Before(other PartialDate) bool { return d.Compare(other) < 0 }

// Equal reports structural equality on (year, month, day).
func (d PartialDate) Equal(other PartialDate) bool { return d == other }

// Approximate fills missing components with 1 and returns the resulting
// calendar date. Used for duration math only; it deliberately conflates a
// bare year with the 1st of January of that year.
func (d PartialDate) Approximate() time.Time {
	return time.Date(d.year, time.Month(max(d.month, 1)), max(d.day, 1), 0, 0, 0, 0, time.UTC)
}

// Earliest returns the earliest calendar date consistent with the known
// precision.
func (d PartialDate) Earliest() time.Time {
	return d.Approximate()
}

// Latest returns the latest calendar date consistent with the known
// precision: 31 December for a bare year, the last day of the month for
// year+month.
func (d PartialDate) Latest() time.Time {
	month := d.month
	if month == 0 {
		month = 12
	}
	day := d.day
	if day == 0 {
		day = daysInMonth(d.year, month)
	}
	return time.Date(d.year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// partialDateJSON is the wire shape: discrete nullable fields plus the
// rendered display form.
type partialDateJSON struct {
	Year    int    `json:"year"`
	Month   *int   `json:"month,omitempty"`
	Day     *int   `json:"day,omitempty"`
	Display string `json:"display,omitempty"`
}

// MarshalJSON renders the discrete fields; unknown components are omitted,
// never defaulted.
func (d PartialDate) MarshalJSON() ([]byte, error) {
	out := partialDateJSON{Year: d.year, Display: d.String()}
	if d.month != 0 {
		month := d.month
		out.Month = &month
	}
	if d.day != 0 {
		day := d.day
		out.Day = &day
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the discrete fields through the validating
// constructors.
func (d *PartialDate) UnmarshalJSON(data []byte) error {
	var in partialDateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	parsed, err := PartialDateFromFields(in.Year, in.Month, in.Day)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String renders "DD/MM/YYYY" when complete, "MM/YYYY" with month-only
// precision, and "YYYY" for a bare year.
func (d PartialDate) String() string {
	switch {
	case d.IsComplete():
		return fmt.Sprintf("%02d/%02d/%04d", d.day, d.month, d.year)
	case d.month != 0:
		return fmt.Sprintf("%02d/%04d", d.month, d.year)
	default:
		return fmt.Sprintf("%04d", d.year)
	}
}
