package service

import (
	"fmt"
	"time"

	"climate-server/internal/modules/climate/types"
)

// OneYearBefore returns the same month and day one year earlier.
// Feb 29 clamps to Feb 28 when the previous year is not a leap year;
// time.AddDate would roll it forward into March instead.
func OneYearBefore(d time.Time) time.Time {
	y, m, day := d.Date()
	if m == time.February && day == 29 && !isLeap(y-1) {
		day = 28
	}
	return time.Date(y-1, m, day, 0, 0, 0, 0, d.Location())
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// BoundsFrom derives the default query window ending at last.
func BoundsFrom(last time.Time) types.DateBounds {
	return types.DateBounds{First: OneYearBefore(last), Last: last}
}
