package flight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestFlexibleCombinations_OneWay(t *testing.T) {
	combos := flexibleCombinations(date("2025-06-15"), time.Time{}, false)

	require.Len(t, combos, 7)

	offsets := make([]int, 0, len(combos))
	for _, c := range combos {
		offsets = append(offsets, c.DepartureOffset)
		assert.False(t, c.HasReturn())
	}
	assert.Equal(t, []int{-3, -2, -1, 0, 1, 2, 3}, offsets)

	assert.Equal(t, "2025-06-12", combos[0].DepartureString())
	assert.Equal(t, "2025-06-18", combos[6].DepartureString())
}

func TestFlexibleCombinations_RoundTrip(t *testing.T) {
	combos := flexibleCombinations(date("2025-06-15"), date("2025-06-25"), true)

	// 7 departure variants + 4 diagonals, none invalid with a 10-day gap
	require.Len(t, combos, 11)

	for _, c := range combos {
		require.True(t, c.HasReturn())
		assert.True(t, c.ReturnDate.After(c.DepartureDate),
			"return %s must be strictly after departure %s", c.ReturnString(), c.DepartureString())
	}

	// the base variants keep the original return date
	for _, c := range combos[:7] {
		assert.Equal(t, "2025-06-25", c.ReturnString())
		assert.Equal(t, 0, c.ReturnOffset)
	}

	// diagonals shift both dates together
	diagonals := combos[7:]
	for _, c := range diagonals {
		assert.Equal(t, c.DepartureOffset, c.ReturnOffset)
	}
}

func TestFlexibleCombinations_DropsInvalidOrdering(t *testing.T) {
	// next-day return: departure offsets +1..+3 put departure on or past the
	// return date and must be dropped
	combos := flexibleCombinations(date("2025-06-15"), date("2025-06-16"), true)

	for _, c := range combos {
		assert.True(t, c.ReturnDate.After(c.DepartureDate))
	}

	// base: offsets -3..0 survive (4), +1..+3 dropped; diagonals all keep the
	// one-day gap and survive (4)
	assert.Len(t, combos, 8)
}

func TestCalendarCombinations_FullWindow(t *testing.T) {
	center := date("2025-06-20")
	today := date("2025-01-01")

	combos := calendarCombinations(center, today, true, 0)

	require.Len(t, combos, 61)
	assert.Equal(t, "2025-06-05", combos[0].DepartureString())
	assert.Equal(t, "2025-08-04", combos[60].DepartureString())
	for _, c := range combos {
		assert.False(t, c.HasReturn())
	}
}

func TestCalendarCombinations_ExcludesPastDates(t *testing.T) {
	center := date("2025-06-20")
	today := date("2025-06-20")

	combos := calendarCombinations(center, today, true, 0)

	// -15..-1 are all in the past
	require.Len(t, combos, 46)
	for _, c := range combos {
		assert.False(t, c.DepartureDate.Before(today))
	}
	assert.Equal(t, "2025-06-20", combos[0].DepartureString())
}

func TestCalendarCombinations_RoundTripPairsReturnDate(t *testing.T) {
	center := date("2025-06-20")
	today := date("2025-01-01")

	combos := calendarCombinations(center, today, false, 7)

	for _, c := range combos {
		require.True(t, c.HasReturn())
		assert.Equal(t, c.DepartureDate.AddDate(0, 0, 7), c.ReturnDate)
	}
}

func TestCalendarCombinations_TodayMidDayStillIncluded(t *testing.T) {
	center := date("2025-06-20")
	// "today" carries a time-of-day component; the cutoff is day-granular
	today := time.Date(2025, 6, 5, 15, 30, 0, 0, time.UTC)

	combos := calendarCombinations(center, today, true, 0)

	require.NotEmpty(t, combos)
	assert.Equal(t, "2025-06-05", combos[0].DepartureString())
}
