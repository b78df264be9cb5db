package flight

import "time"

const dateLayout = "2006-01-02"

// SearchCombination is one point in the flexible-date search space
type SearchCombination struct {
	DepartureDate   time.Time
	ReturnDate      time.Time // zero value for one-way
	DepartureOffset int
	ReturnOffset    int
}

func (c SearchCombination) HasReturn() bool {
	return !c.ReturnDate.IsZero()
}

func (c SearchCombination) DepartureString() string {
	return c.DepartureDate.Format(dateLayout)
}

func (c SearchCombination) ReturnString() string {
	if !c.HasReturn() {
		return ""
	}
	return c.ReturnDate.Format(dateLayout)
}

// flexibleCombinations produces the date pairs for a flexible search:
// departure offsets -3..+3 against the original return date, plus diagonal
// shifts of both dates for offsets {-3,-2,2,3} when a return date exists.
// Combinations whose return date is not strictly after the departure are
// dropped here, before anything reaches the executor.
func flexibleCombinations(departure time.Time, returnDate time.Time, hasReturn bool) []SearchCombination {
	combos := make([]SearchCombination, 0, 11)

	for offset := -3; offset <= 3; offset++ {
		combo := SearchCombination{
			DepartureDate:   departure.AddDate(0, 0, offset),
			DepartureOffset: offset,
		}
		if hasReturn {
			if !returnDate.After(combo.DepartureDate) {
				continue
			}
			combo.ReturnDate = returnDate
		}
		combos = append(combos, combo)
	}

	if hasReturn {
		for _, offset := range []int{-3, -2, 2, 3} {
			dep := departure.AddDate(0, 0, offset)
			ret := returnDate.AddDate(0, 0, offset)
			if !ret.After(dep) {
				continue
			}
			combos = append(combos, SearchCombination{
				DepartureDate:   dep,
				ReturnDate:      ret,
				DepartureOffset: offset,
				ReturnOffset:    offset,
			})
		}
	}

	return combos
}

const (
	calendarDaysBack    = 15
	calendarDaysForward = 45
)

// calendarCombinations enumerates every date from -15 to +45 days around the
// center, skipping anything before today (day granularity). Round-trip
// candidates pair each departure with departure+durationDays.
func calendarCombinations(center time.Time, today time.Time, oneWay bool, durationDays int) []SearchCombination {
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	combos := make([]SearchCombination, 0, calendarDaysBack+calendarDaysForward+1)

	for offset := -calendarDaysBack; offset <= calendarDaysForward; offset++ {
		dep := center.AddDate(0, 0, offset)
		if dep.Before(cutoff) {
			continue
		}
		combo := SearchCombination{
			DepartureDate:   dep,
			DepartureOffset: offset,
		}
		if !oneWay {
			combo.ReturnDate = dep.AddDate(0, 0, durationDays)
			combo.ReturnOffset = offset
		}
		combos = append(combos, combo)
	}

	return combos
}
