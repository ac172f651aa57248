package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMonth(t *testing.T) {
	t.Run("rolls over the year boundary", func(t *testing.T) {
		got := NextMonth(date(2026, time.December, 15, 12, 0))
		assert.Equal(t, date(2027, time.January, 15, 12, 0), got)
	})

	t.Run("clamps to the shorter month", func(t *testing.T) {
		got := NextMonth(date(2026, time.January, 31, 9, 30))
		assert.Equal(t, date(2026, time.February, 28, 9, 30), got)
	})

	t.Run("clamps to leap-year February 29", func(t *testing.T) {
		got := NextMonth(date(2028, time.January, 31, 0, 0))
		assert.Equal(t, date(2028, time.February, 29, 0, 0), got)
	})
}

func TestPrevMonth(t *testing.T) {
	t.Run("rolls back over the year boundary", func(t *testing.T) {
		got := PrevMonth(date(2026, time.January, 15, 12, 0))
		assert.Equal(t, date(2025, time.December, 15, 12, 0), got)
	})

	t.Run("clamps March 31 onto the end of February", func(t *testing.T) {
		got := PrevMonth(date(2026, time.March, 31, 8, 0))
		assert.Equal(t, date(2026, time.February, 28, 8, 0), got)
	})
}

func TestMonthNavigationRoundTrip(t *testing.T) {
	// Mid-month dates survive a round trip unchanged.
	start := date(2026, time.June, 15, 10, 0)
	assert.Equal(t, start, PrevMonth(NextMonth(start)))
}

func TestDayNavigation(t *testing.T) {
	t.Run("next day crosses the month boundary", func(t *testing.T) {
		got := NextDay(date(2026, time.January, 31, 12, 0))
		assert.Equal(t, date(2026, time.February, 1, 12, 0), got)
	})

	t.Run("previous day crosses back", func(t *testing.T) {
		got := PrevDay(date(2026, time.February, 1, 12, 0))
		assert.Equal(t, date(2026, time.January, 31, 12, 0), got)
	})
}
