package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guild/pkg/domain"
	dErrors "guild/pkg/domain-errors"
)

func TestNewEducation(t *testing.T) {
	owner := domain.PersonID(uuid.New())
	start, err := domain.NewYearMonth(2016, 9)
	require.NoError(t, err)
	end, err := domain.NewYearMonth(2020, 6)
	require.NoError(t, err)

	t.Run("valid bounded period", func(t *testing.T) {
		education, err := NewEducation(owner, domain.InstitutionID{}, EducationDegree,
			"BSc Computer Science", start, &end, testNow)
		require.NoError(t, err)
		assert.True(t, education.OwnedBy(owner))
		assert.False(t, education.Period().IsCurrent())
	})

	t.Run("open period is ongoing", func(t *testing.T) {
		education, err := NewEducation(owner, domain.InstitutionID{}, EducationCourse,
			"Distributed Systems", start, nil, testNow)
		require.NoError(t, err)
		assert.True(t, education.Period().IsCurrent())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewEducation(owner, domain.InstitutionID{}, EducationDegree,
			"BSc Computer Science", end, &start, testNow)
		require.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewEducation(owner, domain.InstitutionID{}, EducationKind("bootcamp"),
			"Intense Weeks", start, nil, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := NewEducation(owner, domain.InstitutionID{}, EducationDegree, "", start, nil, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestSetPeriodRevalidates(t *testing.T) {
	owner := domain.PersonID(uuid.New())
	start, err := domain.NewYear(2016)
	require.NoError(t, err)
	education, err := NewEducation(owner, domain.InstitutionID{}, EducationDegree,
		"BSc Computer Science", start, nil, testNow)
	require.NoError(t, err)

	earlier, err := domain.NewYear(2010)
	require.NoError(t, err)
	require.Error(t, education.SetPeriod(start, &earlier))

	// Dates are untouched after a rejected change.
	assert.True(t, education.Period().IsCurrent())
	assert.Equal(t, start, education.Start)
}

func TestParseEducationKind(t *testing.T) {
	for _, raw := range []string{"degree", "certification", "course"} {
		kind, err := ParseEducationKind(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, string(kind))
	}

	_, err := ParseEducationKind("seminar")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestEducationCloneIsIndependent(t *testing.T) {
	owner := domain.PersonID(uuid.New())
	start, err := domain.NewYear(2016)
	require.NoError(t, err)
	end, err := domain.NewYear(2020)
	require.NoError(t, err)
	education, err := NewEducation(owner, domain.InstitutionID{}, EducationDegree,
		"BSc Computer Science", start, &end, testNow)
	require.NoError(t, err)

	clone := education.Clone()
	later, err := domain.NewYear(2022)
	require.NoError(t, err)
	*clone.End = later

	assert.True(t, end.Equal(*education.End))
}
