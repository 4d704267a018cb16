package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(in, out string) DateRange {
	return NewDateRange(day(in), day(out))
}

func TestDateRange_Validate(t *testing.T) {
	assert.NoError(t, rng("2026-03-01", "2026-03-03").Validate())
	assert.ErrorIs(t, rng("2026-03-03", "2026-03-03").Validate(), ErrInvalidRange)
	assert.ErrorIs(t, rng("2026-03-04", "2026-03-03").Validate(), ErrInvalidRange)
}

func TestDateRange_Nights(t *testing.T) {
	assert.Equal(t, 2, rng("2026-03-01", "2026-03-03").Nights())
	assert.Equal(t, 1, rng("2026-12-31", "2027-01-01").Nights())
}

func TestDateRange_Collides(t *testing.T) {
	base := rng("2026-03-01", "2026-03-03")

	cases := []struct {
		name      string
		other     DateRange
		inclusive bool
		exclusive bool
	}{
		{"identical", rng("2026-03-01", "2026-03-03"), true, true},
		{"partial overlap", rng("2026-03-02", "2026-03-04"), true, true},
		{"contained", rng("2026-02-28", "2026-03-05"), true, true},
		{"checkout day equals other check-in", rng("2026-03-03", "2026-03-05"), true, false},
		{"check-in day equals other checkout", rng("2026-02-27", "2026-03-01"), true, false},
		{"disjoint after", rng("2026-03-04", "2026-03-06"), false, false},
		{"disjoint before", rng("2026-02-20", "2026-02-28"), false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.inclusive, base.Collides(tc.other, OverlapInclusive))
			assert.Equal(t, tc.inclusive, tc.other.Collides(base, OverlapInclusive))
			assert.Equal(t, tc.exclusive, base.Collides(tc.other, OverlapExclusive))
			assert.Equal(t, tc.exclusive, tc.other.Collides(base, OverlapExclusive))
		})
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2026-03-01", "2026-03-03")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, r.CheckIn.Location())
	assert.Equal(t, 2, r.Nights())

	_, err = ParseDateRange("03/01/2026", "2026-03-03")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTruncateDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	got := TruncateDay(time.Date(2026, 3, 1, 2, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), got)
}
