package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "guild/pkg/domain-errors"
)

func TestDateRange_Construction(t *testing.T) {
	t.Run("rejects end before start", func(t *testing.T) {
		start := mustYearMonth(t, 2021, 3)
		end := mustYearMonth(t, 2021, 2)
		_, err := NewDateRange(start, &end)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("accepts end equal to start", func(t *testing.T) {
		start := mustYearMonth(t, 2021, 3)
		end := start
		r, err := NewDateRange(start, &end)
		require.NoError(t, err)
		assert.Zero(t, r.ApproximateDurationMonths(time.Now()))
	})

	t.Run("rejects zero start", func(t *testing.T) {
		_, err := NewDateRange(PartialDate{}, nil)
		require.Error(t, err)
	})

	t.Run("bare-year end before same-year month start is rejected", func(t *testing.T) {
		// A bare year sorts before any month of the same year.
		start := mustYearMonth(t, 2021, 1)
		end := mustYear(t, 2021)
		_, err := NewDateRange(start, &end)
		require.Error(t, err)
	})
}

func TestDateRange_Current(t *testing.T) {
	start := mustYearMonth(t, 2020, 1)
	r, err := NewDateRange(start, nil)
	require.NoError(t, err)

	assert.True(t, r.IsCurrent())
	_, ok := r.End()
	assert.False(t, ok)
	assert.Equal(t, "01/2020 - Actual", r.String())
}

func TestDateRange_Duration(t *testing.T) {
	t.Run("bounded range", func(t *testing.T) {
		start := mustYearMonth(t, 2020, 1)
		end := mustYearMonth(t, 2021, 3)
		r, err := NewDateRange(start, &end)
		require.NoError(t, err)
		assert.Equal(t, 14, r.ApproximateDurationMonths(time.Now()))
	})

	t.Run("ongoing range measures against now", func(t *testing.T) {
		start := mustYearMonth(t, 2020, 1)
		r, err := NewDateRange(start, nil)
		require.NoError(t, err)

		now := time.Date(2020, 7, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, 6, r.ApproximateDurationMonths(now))

		later := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 12, r.ApproximateDurationMonths(later))
	})

	t.Run("range starting in the future yields zero, not negative", func(t *testing.T) {
		start := mustYearMonth(t, 2030, 1)
		r, err := NewDateRange(start, nil)
		require.NoError(t, err)

		now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.Zero(t, r.ApproximateDurationMonths(now))
	})

	t.Run("year-only endpoints approximate to January", func(t *testing.T) {
		start := mustYear(t, 2018)
		end := mustYear(t, 2020)
		r, err := NewDateRange(start, &end)
		require.NoError(t, err)
		assert.Equal(t, 24, r.ApproximateDurationMonths(time.Now()))
	})
}

func TestDateRange_Rendering(t *testing.T) {
	start := mustDate(t, 2019, 9, 1)
	end := mustYearMonth(t, 2021, 6)
	r, err := NewDateRange(start, &end)
	require.NoError(t, err)
	assert.Equal(t, "01/09/2019 - 06/2021", r.String())
}
