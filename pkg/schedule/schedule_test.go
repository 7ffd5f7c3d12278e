package schedule

import (
	"testing"
	"time"

	"github.com/aristath/quantrisk/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContiguousNonOverlapping(t *testing.T) {
	start := numeric.NewDate(2024, time.January, 15)
	end := numeric.NewDate(2027, time.January, 15)
	s, err := Build(start, end, SemiAnnual, numeric.Act360, Unadjusted)
	require.NoError(t, err)
	require.Len(t, s.Periods, 6)
	for i := 1; i < len(s.Periods); i++ {
		assert.True(t, s.Periods[i-1].End.Equal(s.Periods[i].Start))
	}
	assert.True(t, s.Periods[0].Start.Equal(start))
	assert.True(t, s.Periods[len(s.Periods)-1].End.Equal(end))
}

func TestBuildRejectsStartAfterEnd(t *testing.T) {
	start := numeric.NewDate(2025, time.January, 1)
	end := numeric.NewDate(2024, time.January, 1)
	_, err := Build(start, end, Annual, numeric.Act365F, Unadjusted)
	require.Error(t, err)
}

func TestYearFractionsSumCloseToTotalYears(t *testing.T) {
	start := numeric.NewDate(2024, time.January, 1)
	end := numeric.NewDate(2029, time.January, 1)
	s, err := Build(start, end, Annual, numeric.Act365F, Unadjusted)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.TotalYearFraction(), 0.02)
}

func TestModifiedFollowingStaysInMonth(t *testing.T) {
	// 2024-06-29 is a Saturday; Following would roll to July 1.
	d := numeric.NewDate(2024, time.June, 29)
	adjusted := adjust(d, ModifiedFollowing)
	assert.Equal(t, time.June, adjusted.Time().Month())
}
