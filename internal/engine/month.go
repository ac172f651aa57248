package engine

import "time"

// NextMonth advances by exactly one calendar month, rolling over year
// boundaries. The day of month is clamped to the target month's length so
// January 31 lands on February 28/29 rather than spilling into March.
func NextMonth(t time.Time) time.Time {
	return shiftMonth(t, 1)
}

// PrevMonth moves back by exactly one calendar month, clamping like NextMonth.
func PrevMonth(t time.Time) time.Time {
	return shiftMonth(t, -1)
}

// NextDay advances the draft date by one calendar day.
func NextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// PrevDay moves the draft date back by one calendar day.
func PrevDay(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}

func shiftMonth(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := lastDayOfMonth(firstOfTarget); day > last {
		day = last
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
