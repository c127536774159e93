package service

import (
	"guild/pkg/domain"
)

// PeriodInput carries the discrete nullable date fields a caller submits for
// a bounded-or-open interval. A nil EndYear means the interval is ongoing.
type PeriodInput struct {
	StartYear  int
	StartMonth *int
	StartDay   *int
	EndYear    *int
	EndMonth   *int
	EndDay     *int
}

// resolve builds the validated partial-date pair. Range ordering is checked
// here so every caller gets the same rejection for end-before-start.
func (p PeriodInput) resolve() (domain.PartialDate, *domain.PartialDate, error) {
	start, err := domain.PartialDateFromFields(p.StartYear, p.StartMonth, p.StartDay)
	if err != nil {
		return domain.PartialDate{}, nil, err
	}
	var end *domain.PartialDate
	if p.EndYear != nil {
		e, err := domain.PartialDateFromFields(*p.EndYear, p.EndMonth, p.EndDay)
		if err != nil {
			return domain.PartialDate{}, nil, err
		}
		end = &e
	}
	if _, err := domain.NewDateRange(start, end); err != nil {
		return domain.PartialDate{}, nil, err
	}
	return start, end, nil
}
