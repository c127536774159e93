package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "guild/pkg/domain-errors"
)

func mustYear(t *testing.T, y int) PartialDate {
	t.Helper()
	d, err := NewYear(y)
	require.NoError(t, err)
	return d
}

func mustYearMonth(t *testing.T, y, m int) PartialDate {
	t.Helper()
	d, err := NewYearMonth(y, m)
	require.NoError(t, err)
	return d
}

func mustDate(t *testing.T, y, m, d int) PartialDate {
	t.Helper()
	pd, err := NewDate(y, m, d)
	require.NoError(t, err)
	return pd
}

func TestPartialDate_Construction(t *testing.T) {
	t.Run("rejects year outside bounds", func(t *testing.T) {
		_, err := NewYear(1899)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = NewYear(2101)
		require.Error(t, err)
	})

	t.Run("accepts boundary years", func(t *testing.T) {
		_, err := NewYear(1900)
		require.NoError(t, err)
		_, err = NewYear(2100)
		require.NoError(t, err)
	})

	t.Run("rejects month outside 1..12", func(t *testing.T) {
		_, err := NewYearMonth(2021, 0)
		require.Error(t, err)
		_, err = NewYearMonth(2021, 13)
		require.Error(t, err)
	})

	t.Run("rejects day outside 1..31", func(t *testing.T) {
		_, err := NewDate(2021, 1, 0)
		require.Error(t, err)
		_, err = NewDate(2021, 1, 32)
		require.Error(t, err)
	})

	t.Run("rejects day beyond days in month", func(t *testing.T) {
		_, err := NewDate(2021, 2, 30)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = NewDate(2021, 4, 31)
		require.Error(t, err)
	})

	t.Run("leap day depends on the actual year", func(t *testing.T) {
		_, err := NewDate(2020, 2, 29)
		require.NoError(t, err)

		_, err = NewDate(2021, 2, 29)
		require.Error(t, err)
	})

	t.Run("rejects day without month", func(t *testing.T) {
		day := 15
		_, err := PartialDateFromFields(2021, nil, &day)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("builds from nullable fields at every precision", func(t *testing.T) {
		month, day := 3, 15

		d, err := PartialDateFromFields(2021, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "2021", d.String())

		d, err = PartialDateFromFields(2021, &month, nil)
		require.NoError(t, err)
		assert.Equal(t, "03/2021", d.String())

		d, err = PartialDateFromFields(2021, &month, &day)
		require.NoError(t, err)
		assert.Equal(t, "15/03/2021", d.String())
	})
}

func TestPartialDate_Rendering(t *testing.T) {
	assert.Equal(t, "05/01/1999", mustDate(t, 1999, 1, 5).String())
	assert.Equal(t, "11/2040", mustYearMonth(t, 2040, 11).String())
	assert.Equal(t, "1900", mustYear(t, 1900).String())
}

func TestPartialDate_Ordering(t *testing.T) {
	t.Run("missing components sort before concrete ones", func(t *testing.T) {
		year := mustYear(t, 2021)
		yearMonth := mustYearMonth(t, 2021, 1)
		full := mustDate(t, 2021, 1, 1)

		assert.Negative(t, year.Compare(yearMonth))
		assert.Negative(t, yearMonth.Compare(full))
		assert.Negative(t, year.Compare(full))
	})

	t.Run("orders by year first", func(t *testing.T) {
		assert.Positive(t, mustYear(t, 2022).Compare(mustDate(t, 2021, 12, 31)))
		assert.Negative(t, mustDate(t, 2020, 12, 31).Compare(mustYear(t, 2021)))
	})

	t.Run("compare zero iff equal", func(t *testing.T) {
		cases := []PartialDate{
			mustYear(t, 2021),
			mustYearMonth(t, 2021, 1),
			mustDate(t, 2021, 1, 1),
			mustDate(t, 2020, 2, 29),
		}
		for _, a := range cases {
			for _, b := range cases {
				if a.Equal(b) {
					assert.Zero(t, a.Compare(b))
				} else {
					assert.NotZero(t, a.Compare(b))
				}
			}
		}
	})

	t.Run("comparison is antisymmetric and transitive", func(t *testing.T) {
		a := mustYear(t, 2019)
		b := mustYearMonth(t, 2019, 6)
		c := mustDate(t, 2019, 6, 30)

		assert.Equal(t, -b.Compare(a), a.Compare(b))
		assert.Negative(t, a.Compare(b))
		assert.Negative(t, b.Compare(c))
		assert.Negative(t, a.Compare(c))
	})
}

func TestPartialDate_Derived(t *testing.T) {
	t.Run("completeness", func(t *testing.T) {
		assert.True(t, mustDate(t, 2021, 5, 17).IsComplete())
		assert.False(t, mustYearMonth(t, 2021, 5).IsComplete())
		assert.False(t, mustYear(t, 2021).IsComplete())
	})

	t.Run("approximate fills missing parts with 1", func(t *testing.T) {
		assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), mustYear(t, 2021).Approximate())
		assert.Equal(t, time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC), mustYearMonth(t, 2021, 5).Approximate())
		assert.Equal(t, time.Date(2021, 5, 17, 0, 0, 0, 0, time.UTC), mustDate(t, 2021, 5, 17).Approximate())
	})

	t.Run("earliest and latest honor the known precision", func(t *testing.T) {
		year := mustYear(t, 2021)
		assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), year.Earliest())
		assert.Equal(t, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), year.Latest())

		feb := mustYearMonth(t, 2020, 2)
		assert.Equal(t, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), feb.Latest())

		full := mustDate(t, 2021, 7, 4)
		assert.Equal(t, full.Approximate(), full.Earliest())
		assert.Equal(t, full.Approximate(), full.Latest())
	})
}
